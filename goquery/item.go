package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bisscrape"
)

const (
	// catalogAttr holds the item's catalog reference, e.g. "item=51242?domain=wotlk".
	catalogAttr = "data-wowhead"

	itemAnchorSelector = `a[` + catalogAttr + `*="item="]`
	iconSelector       = "span.iconsmall ins"
	difficultySelector = ".text-uncommon, .text-legendary, .text-epic"
	timestampSelector  = ".js-timestamp-title"
	addedBySelector    = "a.text-muted"
	tooltipSelector    = `.wowhead-tooltip, .whtt-tooltip, [class*="tooltip"]`
)

var (
	catalogIDPattern  = regexp.MustCompile(`item=(\d+)`)
	domainPattern     = regexp.MustCompile(`domain=(\w+)`)
	iconURLPattern    = regexp.MustCompile(`url\(["']?(.*?)["']?\)`)
	notePrefixPattern = regexp.MustCompile(`^Note:\s*`)
)

// ExtractItem builds an item from a wishlist or loot row. Rows without a
// catalog-referencing anchor, or whose anchor has no text, are not items and
// return false. doc is the whole page, searched for preloaded tooltips, and
// pageURL resolves relative item links.
func ExtractItem(row *goquery.Selection, doc *goquery.Document, pageURL string) (bisscrape.Item, bool) {
	anchor := row.Find(itemAnchorSelector).First()
	if anchor.Length() == 0 {
		return bisscrape.Item{}, false
	}

	name := text(anchor)
	if name == "" {
		return bisscrape.Item{}, false
	}

	ref := anchor.AttrOr(catalogAttr, "")
	item := bisscrape.Item{
		Name:      name,
		CatalogID: catalogID(ref),
		Quality:   bisscrape.ParseQuality(anchor.AttrOr("class", "")),
	}

	if href, ok := anchor.Attr("href"); ok {
		if resolved, err := bisscrape.ResolveURL(href, pageURL); err == nil {
			item.URL = resolved
		}
	}

	item.IconURL = iconURL(anchor)

	if d := row.Find(difficultySelector).First(); d.Length() > 0 {
		item.Difficulty = text(d)
	}

	if v, ok := row.Attr("value"); ok {
		if p, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			item.Priority = &p
		}
	}

	if ts := row.Find(timestampSelector).First(); ts.Length() > 0 {
		item.AddedAt = ts.AttrOr("data-timestamp", "")
		item.AddedBy = text(row.Find(addedBySelector).First())
	}

	if note := firstMatching(row.Find("li"), "Note:"); note.Length() > 0 {
		item.Note = notePrefixPattern.ReplaceAllString(strings.TrimSpace(note.Text()), "")
	}

	item.Tooltip = tooltip(ref, doc)
	return item, true
}

// Items extracts every item row of list in document order, dropping rows
// that are not items.
func Items(rows *goquery.Selection, doc *goquery.Document, pageURL string) []bisscrape.Item {
	items := []bisscrape.Item{}
	rows.Each(func(_ int, row *goquery.Selection) {
		if item, ok := ExtractItem(row, doc, pageURL); ok {
			items = append(items, item)
		}
	})
	return items
}

// catalogID returns the numeric item id of a catalog reference, or "".
func catalogID(ref string) string {
	if m := catalogIDPattern.FindStringSubmatch(ref); m != nil {
		return m[1]
	}
	return ""
}

// iconURL returns the background image of the anchor's icon element.
func iconURL(anchor *goquery.Selection) string {
	style := anchor.Find(iconSelector).First().AttrOr("style", "")
	if !strings.Contains(style, "background-image:") {
		return ""
	}
	if m := iconURLPattern.FindStringSubmatch(style); m != nil {
		return m[1]
	}
	return ""
}

// tooltip parses the first preloaded tooltip on the page that references
// the item, plus the catalog domain named in the reference.
func tooltip(ref string, doc *goquery.Document) *bisscrape.Tooltip {
	id := catalogID(ref)
	if id == "" || doc == nil {
		return nil
	}

	t := &bisscrape.Tooltip{}
	if node := findTooltip(doc, id); node.Length() > 0 {
		if parsed := ParseTooltip(blockText(node)); parsed != nil {
			t = parsed
		}
	}
	if m := domainPattern.FindStringSubmatch(ref); m != nil {
		t.Domain = m[1]
	}

	if t.IsZero() {
		return nil
	}
	return t
}

// findTooltip returns the first tooltip-like element whose markup mentions
// the item id as a catalog reference.
func findTooltip(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find(tooltipSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		markup, err := goquery.OuterHtml(s)
		if err != nil {
			return false
		}
		return referencesItem(markup, id)
	}).First()
}

// referencesItem reports whether markup contains "item=<id>" not followed by
// another digit.
func referencesItem(markup, id string) bool {
	needle := "item=" + id
	for {
		i := strings.Index(markup, needle)
		if i < 0 {
			return false
		}
		rest := markup[i+len(needle):]
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return true
		}
		markup = rest
	}
}
