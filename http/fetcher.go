// Package http provides a cookie-session implementation of bisscrape.Fetcher
// for pages that render without JavaScript.
package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/fwojciec/bisscrape"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Ensure Fetcher implements bisscrape.Fetcher at compile time.
var _ bisscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML with a resty client holding one cookie jar.
// Cookies captured by a browser login can be loaded into the jar, which
// lets the roster be read without launching a browser.
type Fetcher struct {
	client    *resty.Client
	jar       *cookiejar.Jar
	gate      bisscrape.GateDetector
	timeout   time.Duration
	userAgent string
	bypass    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithGateDetector reports login pages as EAUTH errors.
func WithGateDetector(d bisscrape.GateDetector) Option {
	return func(f *Fetcher) {
		f.gate = d
	}
}

// WithCloudflareBypass toggles the browser-like TLS fingerprint transport.
// Defaults to true.
func WithCloudflareBypass(enabled bool) Option {
	return func(f *Fetcher) {
		f.bypass = enabled
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		bypass:    true,
	}
	for _, opt := range opts {
		opt(f)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	f.jar = jar

	client := resty.New()
	client.SetCookieJar(jar)
	if f.bypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("User-Agent", f.userAgent)
	client.SetTimeout(f.timeout)
	f.client = client

	return f, nil
}

// LoadCookies adds stored cookies to the jar.
func (f *Fetcher) LoadCookies(cookies []bisscrape.Cookie) {
	for _, c := range cookies {
		domain := strings.TrimPrefix(c.Domain, ".")
		if domain == "" {
			continue
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		u := &url.URL{Scheme: "https", Host: domain, Path: path}
		f.jar.SetCookies(u, []*http.Cookie{{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		}})
	}
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		Get(rawURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", bisscrape.Errorf(bisscrape.EFETCH, "timed out loading %s after %s", rawURL, f.timeout)
		}
		return "", bisscrape.Errorf(bisscrape.EFETCH, "loading %s: %v", rawURL, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized:
		return "", bisscrape.Errorf(bisscrape.EAUTH, "HTTP %d for %s", code, rawURL)
	case code < 200 || code > 299:
		return "", bisscrape.Errorf(bisscrape.EFETCH, "HTTP %d for %s", code, rawURL)
	}

	html := resp.String()

	current := rawURL
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		current = raw.Request.URL.String()
	}
	if f.gate != nil && f.gate.NeedsAuth(current, html) {
		return "", bisscrape.Errorf(bisscrape.EAUTH, "login required at %s", current)
	}

	return html, nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.GetClient().CloseIdleConnections()
	return nil
}
