package commands

// Command to publish the charts to a Telegram chat
// Renders the charts first unless --skip-render is given
// Sends all six images as one album with the configured caption

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"methodology-charts/internal/clients_api/telegram"
	logging "methodology-charts/internal/infra/log"
	"methodology-charts/internal/infra/retry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	retryBaseDelay = time.Second
	retryMaxDelay  = 30 * time.Second
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the charts and send them to a Telegram chat",
	Long: `Render the charts and send them as one album to the chat configured by
telegram.chat_id (env: TELEGRAM_CHAT_ID) using the bot token from
telegram.bot_token (env: TELEGRAM_BOT_TOKEN).`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().Bool("skip-render", false, "Publish the PNG files already in the output directory")
	publishCmd.Flags().Int64("chat-id", 0, "Telegram chat ID (env: TELEGRAM_CHAT_ID)")
	publishCmd.Flags().String("caption", "", "Album caption (env: TELEGRAM_CAPTION)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidatePublish(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	skipRender, err := cmd.Flags().GetBool("skip-render")
	if err != nil {
		return err
	}

	var paths []string
	if skipRender {
		gen, err := newGenerator()
		if err != nil {
			return err
		}
		if paths, err = existingCharts(gen); err != nil {
			return err
		}
	} else {
		if paths, err = renderCharts(ctx, nil); err != nil {
			return err
		}
	}

	bot, err := telegram.Connect(cfg.Telegram.BotToken, "")
	if err != nil {
		logging.LogError("Failed to connect to Telegram", zap.Error(err))
		return err
	}

	publisher := telegram.NewPublisher(bot, cfg.Telegram.ChatID, telegram.WithRetry(retry.Options{
		MaxRetries: cfg.Telegram.MaxRetries,
		BaseDelay:  retryBaseDelay,
		MaxDelay:   retryMaxDelay,
	}))
	return publisher.PublishCharts(ctx, paths, cfg.Telegram.Caption)
}
