// Package goquery implements bisscrape's page extraction on top of goquery.
//
// Every extractor here is stateless: it parses the rendered HTML it is given,
// reads it without modification and returns freshly built records, so one
// value can serve concurrent calls over different pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bisscrape"
	"golang.org/x/net/html"
)

// parseDocument parses rendered HTML into a goquery document.
// The HTML5 parser recovers from malformed markup, so only reader failures
// surface as errors.
func parseDocument(src string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, bisscrape.Errorf(bisscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// text returns the selection's text with whitespace runs collapsed.
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// blockText returns the selection's text with a newline after every block
// element and <br>, so line-oriented patterns see one tooltip line per line.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeBlockText(&b, n)
	}
	return b.String()
}

func writeBlockText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeBlockText(b, c)
	}
	if n.Type == html.ElementNode && isBlock(n.Data) {
		b.WriteByte('\n')
	}
}

func isBlock(tag string) bool {
	switch tag {
	case "div", "p", "li", "ul", "ol", "tr", "table", "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// firstMatching returns the first element of sel whose collapsed text
// contains substr, or an empty selection.
func firstMatching(sel *goquery.Selection, substr string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), substr)
	}).First()
}
