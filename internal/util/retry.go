package util

import (
	"context"
	"fmt"
	"time"
)

// RetryWithBackoff calls fn up to maxRetries+1 times, doubling the wait
// between attempts starting from baseDelay. A cancelled context aborts
// immediately with the context error.
func RetryWithBackoff(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baseDelay << attempt):
		}
	}
	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
