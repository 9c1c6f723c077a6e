package scrape

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/bisscrape"
	"golang.org/x/time/rate"
)

// HostLimiter spaces requests to the same host by a fixed delay using token
// buckets. Each host gets its own limiter with a burst of 1.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewHostLimiter creates a HostLimiter allowing one request per delay per
// host. A non-positive delay disables limiting.
func NewHostLimiter(delay time.Duration) *HostLimiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to rawURL's host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	host, ok := bisscrape.Hostname(rawURL)
	if !ok {
		host = rawURL
	}

	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(l.limit, 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
