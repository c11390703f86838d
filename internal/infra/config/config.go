package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultOutputDir is where the website picks up the methodology article images.
const DefaultOutputDir = "public/images/articles/methodology-rating-defi-protocols"

// Config -
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Log      LogConfig      `mapstructure:"log"`
}

type OutputConfig struct {
	Dir string  `mapstructure:"dir"`
	DPI float64 `mapstructure:"dpi"` // pixels per figure inch
}

type ChartConfig struct {
	FontPath string `mapstructure:"font_path"` // optional TTF replacing the embedded regular face
}

// TelegramConfig is only needed by the publish command.
type TelegramConfig struct {
	BotToken   string `mapstructure:"bot_token"`
	ChatID     int64  `mapstructure:"chat_id"`
	Caption    string `mapstructure:"caption"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type LogConfig struct {
	Dir     string `mapstructure:"dir"`
	Verbose bool   `mapstructure:"verbose"`
}

// LoadConfig merges, lowest priority first:
// 1. defaults
// 2. config.yaml in the working directory
// 3. .env file and process environment
// 4. command line flags that were explicitly set
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	}

	v.AutomaticEnv()
	setupEnvAliases(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("output.dir", "CHARTS_OUTPUT_DIR")
	v.BindEnv("output.dpi", "CHARTS_DPI")
	v.BindEnv("chart.font_path", "CHARTS_FONT_PATH")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("telegram.caption", "TELEGRAM_CAPTION")
	v.BindEnv("telegram.max_retries", "TELEGRAM_MAX_RETRIES")

	v.BindEnv("log.dir", "LOG_DIR")
	v.BindEnv("log.verbose", "LOG_VERBOSE")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.dpi", 150)

	v.SetDefault("chart.font_path", "")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.caption", "DeFi protocol rating methodology")
	v.SetDefault("telegram.max_retries", 3)

	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.verbose", false)
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"out":     "output.dir",
	"dpi":     "output.dpi",
	"font":    "chart.font_path",
	"chat-id": "telegram.chat_id",
	"caption": "telegram.caption",
	"log-dir": "log.dir",
	"verbose": "log.verbose",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Validate checks settings needed by every command.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if c.Output.DPI <= 0 {
		return fmt.Errorf("output.dpi must be positive, got %v", c.Output.DPI)
	}
	if c.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.max_retries must not be negative")
	}
	return nil
}

// ValidatePublish checks the extra settings the publish command requires.
func (c *Config) ValidatePublish() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required (env: TELEGRAM_BOT_TOKEN)")
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required (env: TELEGRAM_CHAT_ID)")
	}
	return nil
}
