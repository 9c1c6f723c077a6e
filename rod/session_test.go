//go:build integration

package rod_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/bisscrape/fs"
	"github.com/fwojciec/bisscrape/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	session := newSession(t, rod.WithMaxPages(3))

	first := session.Browser()
	require.NotNil(t, first)

	session.IncrementPageCount()
	session.IncrementPageCount()
	session.IncrementPageCount()

	second := session.Browser()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
}

func TestSession_DoesNotRecycleBeforeMaxPages(t *testing.T) {
	t.Parallel()

	session := newSession(t, rod.WithMaxPages(5))

	first := session.Browser()
	session.IncrementPageCount()
	session.IncrementPageCount()

	assert.Same(t, first, session.Browser())
}

func TestSession_PersistsCookiesAcrossSessions(t *testing.T) {
	t.Parallel()

	store := fs.NewCookieStore(filepath.Join(t.TempDir(), "cookies.json"))

	first, err := rod.NewSession(rod.WithCookieStore(store))
	require.NoError(t, err)
	err = first.Browser().SetCookies([]*proto.NetworkCookieParam{{
		Name:   "thatsmybis_session",
		Value:  "abc",
		Domain: "thatsmybis.com",
		Path:   "/",
	}})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	saved, err := store.LoadCookies()
	require.NoError(t, err)
	require.NotEmpty(t, saved)

	second := newSession(t, rod.WithCookieStore(store))
	cookies, err := second.Browser().GetCookies()
	require.NoError(t, err)

	var names []string
	for _, c := range rod.FromNetworkCookies(cookies) {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "thatsmybis_session")
}

func TestSession_Close_Idempotent(t *testing.T) {
	t.Parallel()

	session, err := rod.NewSession()
	require.NoError(t, err)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
}
