package bisscrape

import (
	"regexp"
	"strings"
)

// Link is an anchor collected from a page. Its URL is absolute and unique
// within one collection pass.
type Link struct {
	URL    string         `json:"url"`
	Text   string         `json:"text"`
	Title  string         `json:"title,omitempty"`
	Class  string         `json:"cssClass,omitempty"`
	ID     string         `json:"elementId,omitempty"`
	Parent *ParentContext `json:"parentContext,omitempty"`
}

// ParentContext describes the element directly enclosing a link.
type ParentContext struct {
	Tag         string `json:"tag"`
	Class       string `json:"cssClass,omitempty"`
	ID          string `json:"elementId,omitempty"`
	TextSnippet string `json:"textSnippet"`
}

// LinkCollector turns a page's anchors into deduplicated, in-scope links.
type LinkCollector interface {
	// CollectLinks parses html and returns one Link per distinct resolved
	// URL in document order. A nil filter keeps every link.
	CollectLinks(html string, baseURL string, filter *LinkFilter) ([]Link, error)
}

// LinkCategories partitions collected links by kind.
type LinkCategories struct {
	Internal   []Link `json:"internal"`
	External   []Link `json:"external"`
	Images     []Link `json:"images"`
	Documents  []Link `json:"documents"`
	Navigation []Link `json:"navigation"`
}

var (
	imagePattern      = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|svg|webp)$`)
	documentPattern   = regexp.MustCompile(`(?i)\.(pdf|doc|docx|txt|zip)$`)
	navigationPattern = regexp.MustCompile(`(menu|nav|home|about|contact)`)
)

// Categorize sorts links into categories. The first matching rule wins:
// external host, image extension, document extension, navigation keyword in
// the link text, otherwise internal.
func Categorize(links []Link, domain string) LinkCategories {
	f := &LinkFilter{Domain: domain}
	c := LinkCategories{
		Internal:   []Link{},
		External:   []Link{},
		Images:     []Link{},
		Documents:  []Link{},
		Navigation: []Link{},
	}
	for _, l := range links {
		switch {
		case f.IsExternal(l.URL):
			c.External = append(c.External, l)
		case imagePattern.MatchString(l.URL):
			c.Images = append(c.Images, l)
		case documentPattern.MatchString(l.URL):
			c.Documents = append(c.Documents, l)
		case navigationPattern.MatchString(strings.ToLower(l.Text)):
			c.Navigation = append(c.Navigation, l)
		default:
			c.Internal = append(c.Internal, l)
		}
	}
	return c
}
