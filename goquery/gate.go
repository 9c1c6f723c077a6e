package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bisscrape"
)

// Ensure GateDetector implements bisscrape.GateDetector at compile time.
var _ bisscrape.GateDetector = (*GateDetector)(nil)

// DiscordLinkSelector matches the "log in with Discord" button on gate pages.
const DiscordLinkSelector = ".discord-link"

// gatePathSegments mark login and OAuth endpoints.
var gatePathSegments = map[string]bool{
	"login":     true,
	"oauth":     true,
	"oauth2":    true,
	"auth":      true,
	"authorize": true,
	"connect":   true,
}

// gatePhrases are compared against lowercased visible text.
var gatePhrases = []string{
	"please log in",
	"sign in to continue",
	"connect your account",
	"discord login",
}

// GateDetector recognizes login and OAuth pages standing in for content.
// It checks the page URL first, then the visible text and the Discord
// login button.
type GateDetector struct{}

// NewGateDetector creates a new GateDetector.
func NewGateDetector() *GateDetector {
	return &GateDetector{}
}

// NeedsAuth reports whether the page is an authentication gate.
func (d *GateDetector) NeedsAuth(pageURL string, html string) bool {
	if d.gateURL(pageURL) {
		return true
	}

	doc, err := parseDocument(html)
	if err != nil {
		return false
	}
	if doc.Find(DiscordLinkSelector).Length() > 0 {
		return true
	}
	return d.gateText(doc)
}

func (d *GateDetector) gateURL(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	if strings.Contains(strings.ToLower(u.Hostname()), "discord") {
		return true
	}
	for _, segment := range strings.Split(strings.ToLower(u.Path), "/") {
		if gatePathSegments[segment] {
			return true
		}
	}
	return false
}

func (d *GateDetector) gateText(doc *goquery.Document) bool {
	body := strings.ToLower(text(doc.Find("body")))
	for _, phrase := range gatePhrases {
		if strings.Contains(body, phrase) {
			return true
		}
	}
	return false
}
