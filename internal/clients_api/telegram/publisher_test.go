package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"methodology-charts/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeSender struct {
	failures int // calls to fail with 429 before succeeding
	groups   []tgbotapi.MediaGroupConfig
	photos   []tgbotapi.Chattable
	calls    int
}

func (f *fakeSender) fail() error {
	f.calls++
	if f.calls <= f.failures {
		return &tgbotapi.Error{
			Code:               429,
			Message:            "Too Many Requests: retry after 1",
			ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 1},
		}
	}
	return nil
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := f.fail(); err != nil {
		return tgbotapi.Message{}, err
	}
	f.photos = append(f.photos, c)
	return tgbotapi.Message{MessageID: len(f.photos)}, nil
}

func (f *fakeSender) SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	f.groups = append(f.groups, config)
	return make([]tgbotapi.Message, len(config.Media)), nil
}

func writeCharts(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("chart-%d.png", i))
		require.NoError(t, os.WriteFile(path, []byte("png"), 0644))
		paths = append(paths, path)
	}
	return paths
}

func testPublisher(sender Sender) *Publisher {
	return NewPublisher(sender, -100123,
		WithRateLimiter(rate.NewLimiter(rate.Inf, 1)),
		WithRetry(retry.Options{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}))
}

func TestPublishChartsSendsOneAlbum(t *testing.T) {
	sender := &fakeSender{}
	paths := writeCharts(t, 6)

	require.NoError(t, testPublisher(sender).PublishCharts(context.Background(), paths, "Methodology"))

	require.Len(t, sender.groups, 1)
	group := sender.groups[0]
	assert.Equal(t, int64(-100123), group.ChatID)
	require.Len(t, group.Media, 6)

	first, ok := group.Media[0].(tgbotapi.InputMediaPhoto)
	require.True(t, ok)
	assert.Equal(t, "Methodology", first.Caption)
	second := group.Media[1].(tgbotapi.InputMediaPhoto)
	assert.Empty(t, second.Caption)
}

func TestPublishChartsRetriesRateLimit(t *testing.T) {
	sender := &fakeSender{failures: 2}
	paths := writeCharts(t, 2)

	require.NoError(t, testPublisher(sender).PublishCharts(context.Background(), paths, ""))
	assert.Equal(t, 3, sender.calls)
	assert.Len(t, sender.groups, 1)
}

func TestPublishChartsGivesUp(t *testing.T) {
	sender := &fakeSender{failures: 10}
	paths := writeCharts(t, 2)

	err := testPublisher(sender).PublishCharts(context.Background(), paths, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http error (429)")
	assert.Equal(t, 3, sender.calls)
}

func TestPublishSingleChartUsesPhoto(t *testing.T) {
	sender := &fakeSender{}
	paths := writeCharts(t, 1)

	require.NoError(t, testPublisher(sender).PublishCharts(context.Background(), paths, "Only one"))
	assert.Empty(t, sender.groups)
	require.Len(t, sender.photos, 1)
	photo, ok := sender.photos[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, "Only one", photo.Caption)
}

func TestPublishChartsRejectsEmpty(t *testing.T) {
	err := testPublisher(&fakeSender{}).PublishCharts(context.Background(), nil, "")
	assert.EqualError(t, err, "no charts to publish")
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, classify(plain))

	var he *retry.HTTPError
	err := classify(&tgbotapi.Error{Code: 502, Message: "Bad Gateway"})
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 502, he.StatusCode)
	assert.True(t, retry.IsRetryable(err))

	err = classify(&tgbotapi.Error{Message: "flood", ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 3}})
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 429, he.StatusCode)
	assert.Equal(t, 3*time.Second, he.RetryAfter)

	err = classify(&tgbotapi.Error{Code: 400, Message: "chat not found"})
	assert.False(t, retry.IsRetryable(err))
}

func TestBatches(t *testing.T) {
	paths := make([]string, 23)
	got := batches(paths, maxMediaGroup)
	require.Len(t, got, 3)
	assert.Len(t, got[0], 10)
	assert.Len(t, got[2], 3)
	assert.Empty(t, batches(nil, maxMediaGroup))
}

func TestConnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/getMe", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Charts","username":"charts_bot"}}`)
	}))
	defer srv.Close()

	bot, err := Connect("123:abc", srv.URL+"/bot%s/%s")
	require.NoError(t, err)
	assert.Equal(t, "charts_bot", bot.Self.UserName)
}
