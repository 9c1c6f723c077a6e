package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bisscrape"
)

// Ensure ProfileExtractor implements bisscrape.ProfileLinkExtractor at compile time.
var _ bisscrape.ProfileLinkExtractor = (*ProfileExtractor)(nil)

// Profile links are anchors whose href contains this path marker,
// e.g. /11258/chonglers/c/540876/aelektra.
const profileMarker = "/c/"

const (
	dropdownProfileSelector = `a.dropdown-item[href*="` + profileMarker + `"]`
	anyProfileSelector      = `a[href*="` + profileMarker + `"]`
	userIconSelector        = "span.fas.fa-user"
)

// Administrative links share the profile marker but are not profiles.
var (
	adminHrefMarkers = []string{"/c/create", "member_id=", "/loot"}
	adminTextMarkers = []string{"create", "new"}
)

// ProfileExtractor finds character profile links on a roster page.
type ProfileExtractor struct{}

// NewProfileExtractor creates a new ProfileExtractor.
func NewProfileExtractor() *ProfileExtractor {
	return &ProfileExtractor{}
}

// ExtractProfileLinks parses HTML and returns its profile links.
func (e *ProfileExtractor) ExtractProfileLinks(html string, baseURL string) ([]bisscrape.ProfileLink, error) {
	if _, ok := bisscrape.Hostname(baseURL); !ok {
		return nil, bisscrape.Errorf(bisscrape.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	return ProfileLinks(doc, baseURL), nil
}

// ProfileLinks collects profile links in two passes. Dropdown menu items are
// the trusted source and the only place a user icon is recorded; any other
// profile anchor is added afterwards unless its relative href was already
// captured. The combined list is then deduplicated by resolved URL.
func ProfileLinks(doc *goquery.Document, baseURL string) []bisscrape.ProfileLink {
	var links []bisscrape.ProfileLink
	captured := make(map[string]bool)

	doc.Find(dropdownProfileSelector).Each(func(_ int, sel *goquery.Selection) {
		link, ok := profileLink(sel, baseURL)
		if !ok {
			return
		}
		link.HasUserIcon = sel.Find(userIconSelector).Length() > 0
		captured[link.RelativeURL] = true
		links = append(links, link)
	})

	doc.Find(anyProfileSelector).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if captured[href] {
			return
		}
		link, ok := profileLink(sel, baseURL)
		if !ok {
			return
		}
		captured[link.RelativeURL] = true
		links = append(links, link)
	})

	seen := make(map[string]bool)
	result := []bisscrape.ProfileLink{}
	for _, l := range links {
		if seen[l.URL] {
			continue
		}
		seen[l.URL] = true
		result = append(result, l)
	}
	return result
}

// profileLink builds a profile link from an anchor, rejecting empty,
// administrative and unresolvable hrefs.
func profileLink(sel *goquery.Selection, baseURL string) (bisscrape.ProfileLink, bool) {
	href, _ := sel.Attr("href")
	if href == "" {
		return bisscrape.ProfileLink{}, false
	}

	profileText := strings.TrimSpace(sel.Text())
	if isAdminLink(href, profileText) {
		return bisscrape.ProfileLink{}, false
	}

	resolved, err := bisscrape.ResolveURL(href, baseURL)
	if err != nil {
		return bisscrape.ProfileLink{}, false
	}

	return bisscrape.ProfileLink{
		URL:         resolved,
		RelativeURL: href,
		PlayerName:  playerName(href),
		ProfileText: profileText,
		Title:       sel.AttrOr("title", ""),
		AltTitle:    sel.AttrOr("data-original-title", ""),
	}, true
}

// isAdminLink reports whether an anchor is a creation, membership or loot
// link rather than a character profile.
func isAdminLink(href, text string) bool {
	for _, m := range adminHrefMarkers {
		if strings.Contains(href, m) {
			return true
		}
	}
	lower := strings.ToLower(text)
	for _, m := range adminTextMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// playerName returns the final non-empty path segment of href.
func playerName(href string) string {
	parts := strings.Split(strings.TrimRight(href, "/"), "/")
	return parts[len(parts)-1]
}
