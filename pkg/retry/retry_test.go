package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noBackoff(int) time.Duration { return 0 }

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		calls := 0
		err := Do(ctx, Config{MaxAttempts: 3, Backoff: noBackoff}, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RecoversWithinBudget", func(t *testing.T) {
		calls := 0
		err := Do(ctx, Config{MaxAttempts: 3, Backoff: noBackoff}, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ReturnsLastError", func(t *testing.T) {
		wantErr := errors.New("still broken")
		calls := 0
		err := Do(ctx, Config{MaxAttempts: 3, Backoff: noBackoff}, func() error {
			calls++
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("ZeroConfigRunsOnce", func(t *testing.T) {
		calls := 0
		err := Do(ctx, Config{}, func() error {
			calls++
			return errors.New("nope")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := Do(canceled, Config{MaxAttempts: 3, Backoff: noBackoff}, func() error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("CancelBetweenAttempts", func(t *testing.T) {
		withCancel, cancel := context.WithCancel(ctx)

		calls := 0
		err := Do(withCancel, Config{MaxAttempts: 5, Backoff: ExponentialBackoff(time.Hour)},
			func() error {
				calls++
				cancel()
				return errors.New("transient")
			})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
