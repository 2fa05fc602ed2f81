package pace

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tasksync/tasksync/internal/constants"
	"github.com/tasksync/tasksync/internal/ctxutil"
)

// WithRetry runs operation with exponential backoff: the n-th retry waits
// 100ms * 2^n. It stops early when ctx is canceled and returns the last
// error once maxRetries extra attempts are exhausted.
func WithRetry[T any](ctx context.Context, maxRetries int, operation func() (T, error)) (T, error) {
	var zero T
	logger := zerolog.Ctx(ctx)

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctxutil.Canceled(ctx); err != nil {
			return zero, err
		}

		result, err := operation()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt >= maxRetries {
			logger.Error().
				Err(lastErr).
				Int("attempts", attempt+1).
				Msg("api call failed, retries exhausted")
			return zero, lastErr
		}

		backoff := constants.RetryBaseDelay * (1 << attempt)
		logger.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Msg("api call failed, retrying")

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
