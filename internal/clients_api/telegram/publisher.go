package telegram

// Publishes rendered chart images to a Telegram chat.
// Sends go through a rate limiter and a circuit breaker, and 429/5xx
// answers are retried with backoff.

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"methodology-charts/internal/infra/fs"
	"methodology-charts/internal/infra/log"
	"methodology-charts/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxMediaGroup is the Telegram limit of items per album.
const maxMediaGroup = 10

// fileWait bounds how long a chart may take to appear on disk before upload.
const fileWait = 5 * time.Second

// Sender is the part of tgbotapi.BotAPI the publisher needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
}

// Publisher uploads chart files to one chat.
type Publisher struct {
	bot            Sender
	chatID         int64
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retryOpts      retry.Options
}

type Option func(*Publisher)

// WithRetry overrides the retry policy.
func WithRetry(opts retry.Options) Option {
	return func(p *Publisher) { p.retryOpts = opts }
}

// WithRateLimiter overrides the request pacing.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(p *Publisher) { p.rateLimiter = l }
}

// Connect authorizes the bot. apiEndpoint may be empty for the public Bot API.
func Connect(token, apiEndpoint string) (*tgbotapi.BotAPI, error) {
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, apiEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	log.LogSuccess("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return bot, nil
}

func NewPublisher(bot Sender, chatID int64, opts ...Option) *Publisher {
	p := &Publisher{
		bot:    bot,
		chatID: chatID,
		// Telegram allows roughly one message per second in a chat.
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		circuitBreaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "TelegramAPI",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
		}),
		retryOpts: retry.Options{
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.retryOpts.OnRetry = func(attempt int, err error, sleep time.Duration) {
		log.LogWarn("Telegram send failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("sleep", sleep),
			zap.Error(err))
	}
	return p
}

// PublishCharts sends the files as albums of up to ten photos. The caption
// is attached to the first photo of the first album.
func (p *Publisher) PublishCharts(ctx context.Context, paths []string, caption string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no charts to publish")
	}
	for _, path := range paths {
		if err := fs.WaitForFile(ctx, path, fileWait); err != nil {
			return fmt.Errorf("chart not ready: %w", err)
		}
	}

	start := time.Now()
	for i, batch := range batches(paths, maxMediaGroup) {
		batchCaption := ""
		if i == 0 {
			batchCaption = caption
		}
		if err := p.sendBatch(ctx, batch, batchCaption); err != nil {
			log.LogError("Failed to publish charts", zap.Int64("chatID", p.chatID), zap.Error(err))
			return err
		}
	}

	log.LogSuccess("Charts published to Telegram",
		zap.Int64("chatID", p.chatID),
		zap.Int("count", len(paths)),
		log.Since(start))
	return nil
}

func (p *Publisher) sendBatch(ctx context.Context, paths []string, caption string) error {
	// An album needs at least two items.
	if len(paths) == 1 {
		photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(paths[0]))
		photo.Caption = caption
		return p.do(ctx, filepath.Base(paths[0]), func() error {
			_, err := p.bot.Send(photo)
			return err
		})
	}

	media := make([]interface{}, 0, len(paths))
	for i, path := range paths {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FilePath(path))
		if i == 0 {
			photo.Caption = caption
		}
		media = append(media, photo)
	}
	group := tgbotapi.NewMediaGroup(p.chatID, media)

	return p.do(ctx, fmt.Sprintf("album of %d", len(paths)), func() error {
		_, err := p.bot.SendMediaGroup(group)
		return err
	})
}

func (p *Publisher) do(ctx context.Context, what string, send func() error) error {
	err := retry.Do(ctx, p.retryOpts, func() error {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
		_, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, classify(send())
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to send %s: %w", what, err)
	}
	log.LogInfo("Telegram upload done", zap.String("what", what), zap.Int64("chatID", p.chatID))
	return nil
}

// classify turns Bot API error answers into retry.HTTPError so the retry
// policy can see status codes and retry_after hints.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	status := apiErr.Code
	if status == 0 && apiErr.RetryAfter > 0 {
		// upload answers may omit error_code but still carry retry_after
		status = 429
	}
	return &retry.HTTPError{
		StatusCode: status,
		Body:       []byte(apiErr.Message),
		RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second,
	}
}

func batches(paths []string, size int) [][]string {
	var out [][]string
	for len(paths) > 0 {
		n := size
		if len(paths) < n {
			n = len(paths)
		}
		out = append(out, paths[:n])
		paths = paths[n:]
	}
	return out
}
