package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bisscrape"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns n retries spaced by delay.
func DefaultRetryDelays(n int, delay time.Duration) []time.Duration {
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = delay
	}
	return delays
}

// retryable reports whether another attempt could succeed. Login gates and
// invalid URLs fail the same way every time.
func retryable(err error) bool {
	switch bisscrape.ErrorCode(err) {
	case bisscrape.EAUTH, bisscrape.EINVALID:
		return false
	}
	return true
}

// FetchWithRetry fetches url, retrying transient failures once per entry in
// delays after waiting that long. The logger, if not nil, receives a warning
// for each retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger.Warn("fetch failed, retrying",
				"url", url,
				"attempt", attempt+2,
				"of", maxAttempts,
				"delay", delays[attempt],
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
