package bisscrape

import (
	"regexp"
	"strings"
)

// Pattern matches URLs either by substring or by regular expression.
type Pattern struct {
	Substring string
	Regexp    *regexp.Regexp
}

// ParsePattern builds a Pattern from its textual form. A value wrapped in
// slashes ("/c/\d+/") is compiled as a regular expression; anything else is
// a plain substring.
func ParsePattern(s string) (Pattern, error) {
	if len(s) >= 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/") {
		re, err := regexp.Compile(s[1 : len(s)-1])
		if err != nil {
			return Pattern{}, Errorf(EINVALID, "invalid pattern %q: %v", s, err)
		}
		return Pattern{Regexp: re}, nil
	}
	return Pattern{Substring: s}, nil
}

// ParsePatterns parses every value with ParsePattern.
func ParsePatterns(values []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(values))
	for _, v := range values {
		p, err := ParsePattern(v)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Match reports whether the pattern matches rawURL.
func (p Pattern) Match(rawURL string) bool {
	if p.Regexp != nil {
		return p.Regexp.MatchString(rawURL)
	}
	return strings.Contains(rawURL, p.Substring)
}

// String returns the textual form accepted by ParsePattern.
func (p Pattern) String() string {
	if p.Regexp != nil {
		return "/" + p.Regexp.String() + "/"
	}
	return p.Substring
}

// LinkFilter decides whether a collected link is in scope.
type LinkFilter struct {
	// Domain is the host considered internal, usually the roster page's host.
	Domain string

	// FollowExternal keeps links to other hosts when include patterns allow it.
	FollowExternal bool

	Include []Pattern
	Exclude []Pattern
}

// NewLinkFilter returns a filter whose domain is the host of baseURL.
func NewLinkFilter(baseURL string) (*LinkFilter, error) {
	host, ok := Hostname(baseURL)
	if !ok {
		return nil, Errorf(EINVALID, "invalid base URL %q", baseURL)
	}
	return &LinkFilter{Domain: host}, nil
}

// InScope reports whether rawURL passes the filter. Exclusion is checked
// before inclusion; with no include patterns only internal links pass.
func (f *LinkFilter) InScope(rawURL string) bool {
	external := f.IsExternal(rawURL)
	if external && !f.FollowExternal {
		return false
	}
	if matchesAny(rawURL, f.Exclude) {
		return false
	}
	if len(f.Include) > 0 {
		return matchesAny(rawURL, f.Include)
	}
	return !external
}

// IsExternal reports whether rawURL points outside the filter's domain.
// URLs that cannot be parsed count as external.
func (f *LinkFilter) IsExternal(rawURL string) bool {
	host, ok := Hostname(rawURL)
	if !ok {
		return true
	}
	return !strings.EqualFold(host, f.Domain)
}

func matchesAny(rawURL string, patterns []Pattern) bool {
	for _, p := range patterns {
		if p.Match(rawURL) {
			return true
		}
	}
	return false
}
