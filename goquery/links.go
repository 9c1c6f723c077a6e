package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bisscrape"
	"golang.org/x/net/html"
)

// Ensure LinkCollector implements bisscrape.LinkCollector at compile time.
var _ bisscrape.LinkCollector = (*LinkCollector)(nil)

// parentSnippetLength caps the parent text kept in a link's context.
const parentSnippetLength = 100

// LinkCollector collects every anchor on a page as a generic link record.
type LinkCollector struct{}

// NewLinkCollector creates a new LinkCollector.
func NewLinkCollector() *LinkCollector {
	return &LinkCollector{}
}

// CollectLinks parses HTML and returns its links deduplicated by resolved
// URL, keeping the first occurrence, and then narrowed by filter.
// A nil filter keeps every link.
func (c *LinkCollector) CollectLinks(html string, baseURL string, filter *bisscrape.LinkFilter) ([]bisscrape.Link, error) {
	if _, ok := bisscrape.Hostname(baseURL); !ok {
		return nil, bisscrape.Errorf(bisscrape.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	links := Links(doc, baseURL)
	if filter == nil {
		return links, nil
	}

	kept := make([]bisscrape.Link, 0, len(links))
	for _, l := range links {
		if filter.InScope(l.URL) {
			kept = append(kept, l)
		}
	}
	return kept, nil
}

// Links returns one link per distinct resolved URL in document order.
// Anchors with an empty or unresolvable href are skipped.
func Links(doc *goquery.Document, baseURL string) []bisscrape.Link {
	seen := make(map[string]bool)
	links := []bisscrape.Link{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}

		resolved, err := bisscrape.ResolveURL(href, baseURL)
		if err != nil {
			return
		}

		if seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, bisscrape.Link{
			URL:    resolved,
			Text:   strings.TrimSpace(sel.Text()),
			Title:  sel.AttrOr("title", ""),
			Class:  sel.AttrOr("class", ""),
			ID:     sel.AttrOr("id", ""),
			Parent: parentContext(sel),
		})
	})

	return links
}

// parentContext describes the element enclosing sel, or nil at the root.
func parentContext(sel *goquery.Selection) *bisscrape.ParentContext {
	parent := sel.Parent()
	if parent.Length() == 0 || parent.Nodes[0].Type != html.ElementNode {
		return nil
	}
	return &bisscrape.ParentContext{
		Tag:         goquery.NodeName(parent),
		Class:       parent.AttrOr("class", ""),
		ID:          parent.AttrOr("id", ""),
		TextSnippet: truncate(strings.TrimSpace(parent.Text()), parentSnippetLength),
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
