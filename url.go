package bisscrape

import (
	"net/url"
	"regexp"
	"strings"
)

// schemePattern matches an RFC 3986 scheme prefix such as "https:" or "mailto:".
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// ResolveURL turns an href found on a page into an absolute URL.
//
// Hrefs that already carry a scheme are returned unchanged, protocol-relative
// hrefs ("//host/path") get an https scheme, and everything else is resolved
// against baseURL. An empty or unparseable href (or base) returns an EINVALID
// error; callers skip the link.
func ResolveURL(href, baseURL string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", Errorf(EINVALID, "empty href")
	}

	if schemePattern.MatchString(href) {
		if _, err := url.Parse(href); err != nil {
			return "", Errorf(EINVALID, "invalid URL %q: %v", href, err)
		}
		return href, nil
	}

	if strings.HasPrefix(href, "//") {
		abs := "https:" + href
		if _, err := url.Parse(abs); err != nil {
			return "", Errorf(EINVALID, "invalid URL %q: %v", href, err)
		}
		return abs, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return "", Errorf(EINVALID, "invalid base URL %q", baseURL)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// Hostname returns the host of rawURL without its port, or false if rawURL
// cannot be parsed or has no host.
func Hostname(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return u.Hostname(), true
}
