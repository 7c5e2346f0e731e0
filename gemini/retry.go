package gemini

import (
	"context"
	"time"
)

// GenerateFunc is the signature for a model call.
type GenerateFunc func(ctx context.Context) (string, error)

// DefaultRetryDelays returns the backoff delays for model call retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// generateWithRetry attempts a model call with exponential backoff.
// It retries up to len(delays) times after the initial attempt.
func generateWithRetry(ctx context.Context, generate GenerateFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := generate(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
