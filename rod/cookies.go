package rod

import (
	"time"

	"github.com/fwojciec/bisscrape"
	"github.com/go-rod/rod/lib/proto"
)

// FromNetworkCookies converts browser cookies to their stored form.
// Session cookies get a zero expiry.
func FromNetworkCookies(cookies []*proto.NetworkCookie) []bisscrape.Cookie {
	out := make([]bisscrape.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c == nil {
			continue
		}
		cookie := bisscrape.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if c.Expires > 0 {
			cookie.Expires = c.Expires.Time().UTC()
		}
		out = append(out, cookie)
	}
	return out
}

// CookieParams converts stored cookies to browser cookie parameters.
func CookieParams(cookies []bisscrape.Cookie) []*proto.NetworkCookieParam {
	out := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		p := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		}
		if !c.Expires.IsZero() {
			p.Expires = proto.TimeSinceEpoch(float64(c.Expires.UnixNano()) / float64(time.Second))
		}
		out = append(out, p)
	}
	return out
}
