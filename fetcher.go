package bisscrape

import (
	"context"
	"time"
)

// Fetcher retrieves rendered HTML from URLs on behalf of one session.
// Implementations keep cookies between calls and load one page at a time.
type Fetcher interface {
	// Fetch navigates to the URL and returns the rendered HTML.
	// Network and HTTP failures return EFETCH. When the site answers with a
	// login or consent page, Fetch returns EAUTH instead of waiting; the
	// caller decides how to let the user authenticate and then retries.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases session resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Authenticator waits for an out-of-band login to complete.
type Authenticator interface {
	// Authenticate blocks until the user reports that authentication for
	// gateURL is done, or until ctx is canceled.
	Authenticate(ctx context.Context, gateURL string) error
}

// GateDetector recognizes login and consent pages.
type GateDetector interface {
	// NeedsAuth reports whether the page at pageURL is an authentication gate
	// rather than the requested content.
	NeedsAuth(pageURL string, html string) bool
}

// Cookie is a persisted session cookie.
type Cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure"`
	HTTPOnly bool      `json:"httpOnly"`
}

// CookieStore persists session cookies between runs.
type CookieStore interface {
	// LoadCookies returns the stored cookies, or none if nothing was saved yet.
	LoadCookies() ([]Cookie, error)

	// SaveCookies replaces the stored cookies.
	SaveCookies(cookies []Cookie) error
}
