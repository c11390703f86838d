package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
	assert.Equal(t, 150.0, cfg.Output.DPI)
	assert.Equal(t, "logs", cfg.Log.Dir)
	assert.Equal(t, 3, cfg.Telegram.MaxRetries)
	assert.Empty(t, cfg.Chart.FontPath)
	assert.Error(t, cfg.ValidatePublish())
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHARTS_OUTPUT_DIR", "env-out")
	t.Setenv("CHARTS_DPI", "72")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out", "", "")
	flags.Float64("dpi", 0, "")
	require.NoError(t, flags.Parse([]string{"--out", "flag-out"}))

	cfg, err := LoadConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "flag-out", cfg.Output.Dir)
	assert.Equal(t, 72.0, cfg.Output.DPI, "unset flag must not shadow env")
	assert.Equal(t, int64(-1001234), cfg.Telegram.ChatID)
	assert.NoError(t, cfg.ValidatePublish())
}

func TestValidate(t *testing.T) {
	cfg := Config{Output: OutputConfig{Dir: "out", DPI: 0}}
	assert.ErrorContains(t, cfg.Validate(), "output.dpi must be positive")

	cfg.Output.DPI = 150
	cfg.Telegram.MaxRetries = -1
	assert.ErrorContains(t, cfg.Validate(), "max_retries")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores the previous one when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
