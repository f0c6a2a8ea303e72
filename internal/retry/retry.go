package retry

import (
	"context"
	"time"

	ai "github.com/striderlabs/strider"
)

// Do executes the given function with retry logic.
// It respects context cancellation during backoff waits. When the error
// carries a server-provided retry delay (Retry-After), that delay is used
// instead of the computed backoff if it is longer.
// Returns the result on success, or the last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsTransient(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.Delay(attempt)
			if server := ai.RetryAfterOf(err); server > delay {
				delay = server
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}
