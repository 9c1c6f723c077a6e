package rod_test

import (
	"testing"
	"time"

	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieConversion(t *testing.T) {
	t.Parallel()

	t.Run("round trips persistent cookies", func(t *testing.T) {
		t.Parallel()

		expires := time.Date(2027, 3, 1, 12, 0, 0, 0, time.UTC)
		stored := []bisscrape.Cookie{{
			Name:     "thatsmybis_session",
			Value:    "abc",
			Domain:   ".thatsmybis.com",
			Path:     "/",
			Expires:  expires,
			Secure:   true,
			HTTPOnly: true,
		}}

		params := rod.CookieParams(stored)
		require.Len(t, params, 1)
		assert.Equal(t, "thatsmybis_session", params[0].Name)
		assert.True(t, params[0].HTTPOnly)

		back := rod.FromNetworkCookies([]*proto.NetworkCookie{{
			Name:     params[0].Name,
			Value:    params[0].Value,
			Domain:   params[0].Domain,
			Path:     params[0].Path,
			Expires:  params[0].Expires,
			Secure:   params[0].Secure,
			HTTPOnly: params[0].HTTPOnly,
		}})
		require.Len(t, back, 1)
		assert.WithinDuration(t, expires, back[0].Expires, time.Second)
		assert.Equal(t, stored[0].Domain, back[0].Domain)
		assert.True(t, back[0].Secure)
	})

	t.Run("session cookies have no expiry", func(t *testing.T) {
		t.Parallel()

		back := rod.FromNetworkCookies([]*proto.NetworkCookie{{Name: "s", Value: "v", Expires: -1}, nil})

		require.Len(t, back, 1)
		assert.True(t, back[0].Expires.IsZero())

		params := rod.CookieParams(back)
		assert.Zero(t, params[0].Expires)
	})
}
