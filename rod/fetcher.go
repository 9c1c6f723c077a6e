package rod

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/bisscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Ensure Fetcher implements bisscrape.Fetcher at compile time.
var _ bisscrape.Fetcher = (*Fetcher)(nil)

// Defaults for Fetcher options.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultSettleDelay  = time.Second
	DefaultLoginButton  = ".discord-link"
)

// Fetcher loads pages in a single reused browser tab, so navigation keeps
// the session's cookies and the site sees one visitor. Fetches are
// serialized; Fetcher is safe for concurrent use but gains nothing from it.
type Fetcher struct {
	session     *Session
	gate        bisscrape.GateDetector
	userAgent   string
	timeout     time.Duration
	settle      time.Duration
	loginButton string
	stealth     bool

	mu      sync.Mutex
	page    *rod.Page
	browser *rod.Browser
	closed  bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout bounds each navigation.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay waits after the load event for scripts to finish rendering.
func WithSettleDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithUserAgent overrides the tab's user agent.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithGateDetector reports login pages as EAUTH errors.
func WithGateDetector(d bisscrape.GateDetector) FetcherOption {
	return func(f *Fetcher) {
		f.gate = d
	}
}

// WithLoginButton sets the selector clicked on a login page to start the
// OAuth flow. An empty selector disables clicking.
func WithLoginButton(selector string) FetcherOption {
	return func(f *Fetcher) {
		f.loginButton = selector
	}
}

// WithStealth toggles the automation-hiding scripts injected into the tab.
// Defaults to true.
func WithStealth(enabled bool) FetcherOption {
	return func(f *Fetcher) {
		f.stealth = enabled
	}
}

// NewFetcher creates a Fetcher that browses within session.
// The session is not closed by the Fetcher.
func NewFetcher(session *Session, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		session:     session,
		timeout:     DefaultFetchTimeout,
		settle:      DefaultSettleDelay,
		loginButton: DefaultLoginButton,
		stealth:     true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates the tab to url and returns the rendered HTML.
// A login page yields an EAUTH error after clicking the login button, so the
// caller can wait for the user to finish in the browser window and retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", bisscrape.Errorf(bisscrape.EINVALID, "fetcher is closed")
	}

	page, err := f.tab()
	if err != nil {
		return "", bisscrape.Errorf(bisscrape.EFETCH, "opening tab: %v", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	p := page.Context(navCtx)

	if err := p.Navigate(url); err != nil {
		return "", f.fetchError(ctx, url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return "", f.fetchError(ctx, url, err)
	}
	if err := sleep(ctx, f.settle); err != nil {
		return "", err
	}

	html, err := p.HTML()
	if err != nil {
		return "", f.fetchError(ctx, url, err)
	}
	f.session.IncrementPageCount()

	current := url
	if info, err := p.Info(); err == nil && info.URL != "" {
		current = info.URL
	}

	if f.gate != nil && f.gate.NeedsAuth(current, html) {
		f.clickLogin(p)
		return "", bisscrape.Errorf(bisscrape.EAUTH, "login required at %s", current)
	}

	return html, nil
}

// Close releases the tab. The session stays open.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.page == nil {
		return nil
	}
	err := f.page.Close()
	f.page = nil
	f.browser = nil
	return err
}

// tab returns the reusable tab, opening a new one when the session's
// browser was recycled. Must be called with mu held.
func (f *Fetcher) tab() (*rod.Page, error) {
	browser := f.session.Browser()
	if f.page != nil && f.browser == browser {
		return f.page, nil
	}

	var page *rod.Page
	var err error
	if f.stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, err
	}

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			_ = page.Close()
			return nil, err
		}
	}

	f.page = page
	f.browser = browser
	return page, nil
}

// clickLogin starts the OAuth flow when the login button is present.
// Failures are ignored; the user can still log in by hand.
func (f *Fetcher) clickLogin(p *rod.Page) {
	if f.loginButton == "" {
		return
	}
	has, el, err := p.Has(f.loginButton)
	if err != nil || !has {
		return
	}
	_ = el.Click(proto.InputMouseButtonLeft, 1)
}

// fetchError keeps caller cancellation visible and reports everything else
// as EFETCH.
func (f *Fetcher) fetchError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return bisscrape.Errorf(bisscrape.EFETCH, "timed out loading %s after %s", url, f.timeout)
	}
	return bisscrape.Errorf(bisscrape.EFETCH, "loading %s: %v", url, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
