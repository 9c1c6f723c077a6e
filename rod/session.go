package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/bisscrape"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

// Session owns one browser process and the login state it carries.
// Cookies are loaded from the cookie store when the browser starts and saved
// back on Close, so a login completed in one run is reused by the next.
//
// Session is safe for concurrent use.
type Session struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	cookies   bisscrape.CookieStore
	headless  bool
	dataDir   string
	pageCount int64
	maxPages  int64
	mu        sync.Mutex
	closed    atomic.Bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHeadless controls whether the browser window is hidden.
// Interactive logins need a visible window. Defaults to true.
func WithHeadless(headless bool) SessionOption {
	return func(s *Session) {
		s.headless = headless
	}
}

// WithUserDataDir keeps the browser profile in dir between runs.
func WithUserDataDir(dir string) SessionOption {
	return func(s *Session) {
		s.dataDir = dir
	}
}

// WithCookieStore loads and saves session cookies through store.
func WithCookieStore(store bisscrape.CookieStore) SessionOption {
	return func(s *Session) {
		s.cookies = store
	}
}

// WithMaxPages sets the maximum number of pages before the browser is recycled.
// Defaults to 75 if not specified.
func WithMaxPages(n int64) SessionOption {
	return func(s *Session) {
		s.maxPages = n
	}
}

// NewSession launches a browser and restores saved cookies.
// Close must be called when the Session is no longer needed.
func NewSession(opts ...SessionOption) (*Session, error) {
	s := &Session{
		headless: true,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.launchBrowser(); err != nil {
		return nil, err
	}

	if err := s.restoreCookies(); err != nil {
		_ = s.closeBrowser()
		return nil, err
	}

	return s, nil
}

// Browser returns the current browser instance, recycling it once the page
// count has reached maxPages. Callers compare the returned pointer with the
// one their tab belongs to and open a new tab when it changed.
func (s *Session) Browser() *rod.Browser {
	s.mu.Lock()
	defer s.mu.Unlock()

	if atomic.LoadInt64(&s.pageCount) >= s.maxPages {
		s.recycleBrowser()
	}

	return s.browser
}

// IncrementPageCount records one processed page toward the recycling threshold.
func (s *Session) IncrementPageCount() {
	atomic.AddInt64(&s.pageCount, 1)
}

// SaveCookies writes the browser's current cookies to the cookie store.
func (s *Session) SaveCookies() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCookies()
}

// Close saves cookies and releases browser resources.
// Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saveErr := s.saveCookies()
	if err := s.closeBrowser(); err != nil {
		return err
	}
	return saveErr
}

// launchBrowser starts a new browser instance with stability flags.
func (s *Session) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled").
		Leakless(true).
		Headless(s.headless)
	if s.dataDir != "" {
		lnchr = lnchr.UserDataDir(s.dataDir)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	s.browser = browser
	s.launcher = lnchr
	return nil
}

// restoreCookies copies saved cookies into the browser.
func (s *Session) restoreCookies() error {
	if s.cookies == nil {
		return nil
	}
	saved, err := s.cookies.LoadCookies()
	if err != nil {
		return fmt.Errorf("loading cookies: %w", err)
	}
	if len(saved) == 0 {
		return nil
	}
	if err := s.browser.SetCookies(CookieParams(saved)); err != nil {
		return fmt.Errorf("restoring cookies: %w", err)
	}
	return nil
}

// saveCookies must be called with mu held.
func (s *Session) saveCookies() error {
	if s.cookies == nil || s.browser == nil {
		return nil
	}
	current, err := s.browser.GetCookies()
	if err != nil {
		return fmt.Errorf("reading cookies: %w", err)
	}
	return s.cookies.SaveCookies(FromNetworkCookies(current))
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (s *Session) closeBrowser() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser carrying the old browser's cookies
// and closes the old one. If launching fails, the old browser is kept.
// Must be called with mu held.
func (s *Session) recycleBrowser() {
	oldBrowser := s.browser
	oldLauncher := s.launcher

	var carried []bisscrape.Cookie
	if oldBrowser != nil {
		if current, err := oldBrowser.GetCookies(); err == nil {
			carried = FromNetworkCookies(current)
		}
	}

	s.browser = nil
	s.launcher = nil
	if err := s.launchBrowser(); err != nil {
		s.browser = oldBrowser
		s.launcher = oldLauncher
		return
	}
	if len(carried) > 0 {
		_ = s.browser.SetCookies(CookieParams(carried))
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	atomic.StoreInt64(&s.pageCount, 0)
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}
