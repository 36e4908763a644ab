package inspect

import (
	"context"
	"time"

	"github.com/fwojciec/pagemeta"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is called before each retry with the attempt about to be made
// (starting at 2) and the error that caused it.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays calls fetch until it succeeds, making one attempt
// plus one retry per delay. EINVALID and ENOTFOUND errors are returned
// immediately since repeating the request cannot change them.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt == len(delays) {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch pagemeta.ErrorCode(err) {
	case pagemeta.EINVALID, pagemeta.ENOTFOUND:
		return false
	}
	return true
}
