package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabridge/storefront/pkg/retry"
)

var errBoom = errors.New("boom")

func fastConfig(attempts int, shouldRetry retry.ShouldRetry) retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts: attempts,
		Backoff:     retry.LineareBackoff(time.Millisecond),
		ShouldRetry: shouldRetry,
	}
}

func TestDoWithResult(t *testing.T) {

	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		calls := 0
		got, err := retry.DoWithResult(t.Context(), fastConfig(3, nil), func() (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		calls := 0
		got, err := retry.DoWithResult(t.Context(), fastConfig(3, nil), func() (string, error) {
			calls++
			if calls < 3 {
				return "", errBoom
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustedAttemptsReturnLastError", func(t *testing.T) {
		calls := 0
		_, err := retry.DoWithResult(t.Context(), fastConfig(3, nil), func() (int, error) {
			calls++
			return 0, errBoom
		})
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 3, calls)
	})

	t.Run("NonRetryableErrorStopsImmediately", func(t *testing.T) {
		noRetry := func(error) bool { return false }

		calls := 0
		_, err := retry.DoWithResult(t.Context(), fastConfig(3, noRetry), func() (int, error) {
			calls++
			return 0, errBoom
		})
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, calls)
	})

	t.Run("CancelledContextSkipsTheCall", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		calls := 0
		_, err := retry.DoWithResult(ctx, fastConfig(3, nil), func() (int, error) {
			calls++
			return 0, errBoom
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})

	t.Run("CancelDuringBackoffCarriesBothErrors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())

		cfg := retry.RetryConfig{
			MaxAttempts: 2,
			Backoff:     retry.LineareBackoff(time.Minute),
		}
		_, err := retry.DoWithResult(ctx, cfg, func() (int, error) {
			cancel()
			return 0, errBoom
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestDo(t *testing.T) {
	calls := 0
	err := retry.Do(t.Context(), fastConfig(2, nil), func() error {
		calls++
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, calls)
}
