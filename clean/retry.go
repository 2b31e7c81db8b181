package clean

import (
	"context"
	"time"

	"github.com/fwojciec/bookvox"
)

// CorrectFunc is the signature for a correction call.
type CorrectFunc func(ctx context.Context, req *bookvox.CorrectionRequest) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for correction retries: 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// CorrectWithRetry calls correct, retrying with the given delays while the
// service reports itself unavailable. Other failures are returned at once.
// The logger function, if provided, is called for each retry attempt.
func CorrectWithRetry(ctx context.Context, req *bookvox.CorrectionRequest, correct CorrectFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := correct(ctx, req)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if bookvox.ErrorCode(err) != bookvox.EUNAVAILABLE || attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry correction (attempt %d): %v", attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
