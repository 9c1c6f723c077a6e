package mock

import (
	"context"

	"github.com/fwojciec/bisscrape"
)

var _ bisscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of bisscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ bisscrape.Authenticator = (*Authenticator)(nil)

// Authenticator is a mock implementation of bisscrape.Authenticator.
type Authenticator struct {
	AuthenticateFn func(ctx context.Context, gateURL string) error
}

func (a *Authenticator) Authenticate(ctx context.Context, gateURL string) error {
	return a.AuthenticateFn(ctx, gateURL)
}

var _ bisscrape.GateDetector = (*GateDetector)(nil)

// GateDetector is a mock implementation of bisscrape.GateDetector.
type GateDetector struct {
	NeedsAuthFn func(pageURL, html string) bool
}

func (d *GateDetector) NeedsAuth(pageURL, html string) bool {
	return d.NeedsAuthFn(pageURL, html)
}

var _ bisscrape.CookieStore = (*CookieStore)(nil)

// CookieStore is a mock implementation of bisscrape.CookieStore.
type CookieStore struct {
	LoadCookiesFn func() ([]bisscrape.Cookie, error)
	SaveCookiesFn func(cookies []bisscrape.Cookie) error
}

func (s *CookieStore) LoadCookies() ([]bisscrape.Cookie, error) {
	return s.LoadCookiesFn()
}

func (s *CookieStore) SaveCookies(cookies []bisscrape.Cookie) error {
	return s.SaveCookiesFn(cookies)
}
