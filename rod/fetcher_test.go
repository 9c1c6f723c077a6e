//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/goquery"
	"github.com/fwojciec/bisscrape/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements bisscrape.Fetcher.
var _ bisscrape.Fetcher = (*rod.Fetcher)(nil)

func newSession(t *testing.T, opts ...rod.SessionOption) *rod.Session {
	t.Helper()
	session, err := rod.NewSession(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(newSession(t))
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Roster</title></head>
<body>
<div id="content">Loading...</div>
<script>
document.getElementById('content').textContent = 'Rendered Roster';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(newSession(t), rod.WithSettleDelay(0))
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Rendered Roster")
	assert.NotContains(t, html, "Loading...")
}

func TestFetcher_Fetch_ReusesOneTab(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/set" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		}
		w.Header().Set("Content-Type", "text/html")
		cookie, _ := r.Cookie("session")
		if cookie != nil {
			_, _ = w.Write([]byte(`<html><body>cookie=` + cookie.Value + `</body></html>`))
			return
		}
		_, _ = w.Write([]byte(`<html><body>no cookie</body></html>`))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(newSession(t), rod.WithSettleDelay(0))
	defer fetcher.Close()

	_, err := fetcher.Fetch(context.Background(), srv.URL+"/set")
	require.NoError(t, err)

	html, err := fetcher.Fetch(context.Background(), srv.URL+"/check")

	require.NoError(t, err)
	assert.Contains(t, html, "cookie=abc")
}

func TestFetcher_Fetch_ReportsLoginGate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p>Please log in</p></body></html>`))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(newSession(t),
		rod.WithSettleDelay(0),
		rod.WithGateDetector(goquery.NewGateDetector()),
	)
	defer fetcher.Close()

	_, err := fetcher.Fetch(context.Background(), srv.URL+"/roster")

	require.Error(t, err)
	assert.True(t, bisscrape.NeedsInteractiveAuth(err))
	assert.Contains(t, bisscrape.ErrorMessage(err), "/login")
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher := rod.NewFetcher(newSession(t), rod.WithFetchTimeout(100*time.Millisecond))
	defer fetcher.Close()

	_, err := fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, bisscrape.EFETCH, bisscrape.ErrorCode(err))
}

func TestFetcher_Close_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher := rod.NewFetcher(newSession(t))

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	fetcher := rod.NewFetcher(newSession(t))
	require.NoError(t, fetcher.Close())

	_, err := fetcher.Fetch(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, bisscrape.EINVALID, bisscrape.ErrorCode(err))
	assert.Contains(t, bisscrape.ErrorMessage(err), "closed")
}
