package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(&HTTPError{StatusCode: 429}))
	assert.True(t, IsRetryable(fmt.Errorf("send: %w", &HTTPError{StatusCode: 502})))
	assert.False(t, IsRetryable(&HTTPError{StatusCode: 400}))
	assert.True(t, IsRetryable(timeoutErr{}))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	var retried []int
	err := Do(context.Background(), Options{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		OnRetry:    func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) },
	}, func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 503}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{0, 1}, retried)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 5, BaseDelay: time.Millisecond}, func() error {
		calls++
		return &HTTPError{StatusCode: 400, Body: []byte("bad request")}
	})

	assert.EqualError(t, err, "http error (400): bad request")
	assert.Equal(t, 1, calls)
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 2, BaseDelay: time.Millisecond}, func() error {
		calls++
		return &HTTPError{StatusCode: 500}
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoHonorsRetryAfter(t *testing.T) {
	var slept time.Duration
	calls := 0
	err := Do(context.Background(), Options{
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		OnRetry:    func(_ int, _ error, sleep time.Duration) { slept = sleep },
	}, func() error {
		calls++
		if calls == 1 {
			return &HTTPError{StatusCode: 429, RetryAfter: time.Hour}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, slept, "retry-after is clamped to MaxDelay")
}

func TestDoCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, Options{}, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFullJitterSleepBounds(t *testing.T) {
	for attempt := 0; attempt < 6; attempt++ {
		d := FullJitterSleep(attempt, 10*time.Millisecond, 40*time.Millisecond)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 40*time.Millisecond)
	}
	assert.Zero(t, FullJitterSleep(3, 0, time.Second))
}
