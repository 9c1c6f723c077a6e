package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bisscrape"
)

// Ensure CharacterExtractor implements bisscrape.CharacterExtractor at compile time.
var _ bisscrape.CharacterExtractor = (*CharacterExtractor)(nil)

// Class archetypes used as "text-<archetype>" styles on the name heading.
var archetypes = []string{
	"shaman", "mage", "paladin", "warrior", "hunter", "rogue", "priest",
	"druid", "warlock", "death-knight", "monk", "demon-hunter", "evoker",
}

// titleSuffixes are stripped from the page title to recover the name.
var titleSuffixes = []string{" - That's My BIS", " - That’s My BIS"}

// classIconSelector matches the icon next to the class name in the details list.
const classIconSelector = "li .fas.fa-bow-arrow, li .fas.fa-sword, li .fas.fa-shield, li .fas.fa-magic, " +
	"li .fas.fa-heart, li .fas.fa-leaf, li .fas.fa-skull, li .fas.fa-fist-raised"

var races = []string{
	"Draenei", "Human", "Night Elf", "Dwarf", "Gnome", "Orc", "Undead",
	"Tauren", "Troll", "Blood Elf",
}

var professions = []string{
	"Engineering", "Enchanting", "Mining", "Herbalism", "Skinning", "Tailoring",
	"Blacksmithing", "Leatherworking", "Alchemy", "Jewelcrafting", "Inscription",
}

var levelPattern = regexp.MustCompile(`(\d+)`)

const (
	detailSelector       = "li small"
	wishlistHeadings     = ".col-12 .text-legendary, .col-12 .text-gold"
	unsortedList         = "ol.js-wishlist-unsorted"
	successHeadings      = ".col-12 .text-success"
	mutedHeadings        = ".col-12 .text-muted"
	markdownSelector     = ".js-markdown-parsed"
	emptyNotePlaceholder = "—"
)

// CharacterExtractor builds character records from rendered character pages.
type CharacterExtractor struct {
	converter bisscrape.Converter
	now       func() time.Time
}

// CharacterOption configures a CharacterExtractor.
type CharacterOption func(*CharacterExtractor)

// WithNoteConverter converts the public note's HTML to Markdown instead of
// keeping its plain text. Conversion failures fall back to the plain text.
func WithNoteConverter(c bisscrape.Converter) CharacterOption {
	return func(e *CharacterExtractor) {
		e.converter = c
	}
}

// WithClock sets the function used to stamp ScrapedAt.
// Defaults to the current UTC time.
func WithClock(now func() time.Time) CharacterOption {
	return func(e *CharacterExtractor) {
		e.now = now
	}
}

// NewCharacterExtractor creates a new CharacterExtractor.
func NewCharacterExtractor(opts ...CharacterOption) *CharacterExtractor {
	e := &CharacterExtractor{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractCharacter parses HTML and returns the character it describes.
// Missing markup leaves fields empty; it is never an error.
func (e *CharacterExtractor) ExtractCharacter(html string, pageURL string) (*bisscrape.Character, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}
	return e.Character(doc, pageURL), nil
}

// Character extracts a character from a parsed page.
func (e *CharacterExtractor) Character(doc *goquery.Document, pageURL string) *bisscrape.Character {
	return &bisscrape.Character{
		Name:         characterName(doc),
		Class:        characterClass(doc),
		Race:         characterRace(doc),
		Level:        characterLevel(doc),
		Professions:  characterProfessions(doc),
		Wishlists:    wishlists(doc, pageURL),
		LootReceived: lootReceived(doc, pageURL),
		Recipes:      []string{},
		PublicNote:   e.publicNote(doc),
		URL:          pageURL,
		ScrapedAt:    e.now(),
	}
}

// nameStrategies are tried in order; the first non-empty result wins.
var nameStrategies = []func(*goquery.Document) string{
	nameFromArchetypeHeading,
	nameFromStyledHeading,
	nameFromTitle,
}

func characterName(doc *goquery.Document) string {
	for _, strategy := range nameStrategies {
		if name := strategy(doc); name != "" {
			return name
		}
	}
	return ""
}

func nameFromArchetypeHeading(doc *goquery.Document) string {
	selectors := make([]string, len(archetypes))
	for i, a := range archetypes {
		selectors[i] = "h1 a.text-" + a
	}
	return text(doc.Find(strings.Join(selectors, ", ")).First())
}

func nameFromStyledHeading(doc *goquery.Document) string {
	return text(doc.Find(`h1 a[class^="text-"]`).First())
}

func nameFromTitle(doc *goquery.Document) string {
	title := doc.Find("title").First().Text()
	for _, suffix := range titleSuffixes {
		if i := strings.Index(title, suffix); i >= 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return ""
}

// characterClass reads the last word next to the class icon.
func characterClass(doc *goquery.Document) string {
	icon := doc.Find(classIconSelector).First()
	if icon.Length() == 0 {
		return ""
	}
	words := strings.Fields(icon.Parent().Text())
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

func characterRace(doc *goquery.Document) string {
	var race string
	doc.Find(detailSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		race = firstTerm(s.Text(), races)
		return race == ""
	})
	return race
}

func characterLevel(doc *goquery.Document) *int {
	var level *int
	doc.Find(detailSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		level = matchInt(levelPattern, s.Text())
		return level == nil
	})
	return level
}

// characterProfessions splits the first detail line naming a profession.
func characterProfessions(doc *goquery.Document) []string {
	result := []string{}
	line := doc.Find(detailSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return firstTerm(s.Text(), professions) != ""
	}).First()
	if line.Length() == 0 {
		return result
	}
	for _, p := range strings.Split(strings.TrimSpace(line.Text()), ",") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// firstTerm returns the first vocabulary term that appears in s.
func firstTerm(s string, vocabulary []string) string {
	for _, term := range vocabulary {
		if strings.Contains(s, term) {
			return term
		}
	}
	return ""
}

// wishlists reads every "Wishlist" section. Items come from the unsorted
// list only; the sorted list repeats the same rows in another order.
func wishlists(doc *goquery.Document, pageURL string) []bisscrape.Wishlist {
	result := []bisscrape.Wishlist{}
	doc.Find(wishlistHeadings).Each(func(_ int, heading *goquery.Selection) {
		if !strings.Contains(heading.Text(), "Wishlist") {
			return
		}
		container := heading.Parent().Parent()
		rows := container.Find(unsortedList).ChildrenFiltered("li")
		result = append(result, bisscrape.Wishlist{
			Name:  text(heading),
			Items: Items(rows, doc, pageURL),
		})
	})
	return result
}

func lootReceived(doc *goquery.Document, pageURL string) []bisscrape.Item {
	heading := firstMatching(doc.Find(successHeadings), "Loot Received")
	if heading.Length() == 0 {
		return []bisscrape.Item{}
	}
	list := sectionFind(heading, "ol")
	return Items(list.ChildrenFiltered("li"), doc, pageURL)
}

func (e *CharacterExtractor) publicNote(doc *goquery.Document) string {
	heading := firstMatching(doc.Find(mutedHeadings), "Public Note")
	if heading.Length() == 0 {
		return ""
	}
	note := sectionFind(heading, markdownSelector).First()
	plain := strings.TrimSpace(note.Text())
	if plain == "" || plain == emptyNotePlaceholder {
		return ""
	}

	if e.converter != nil {
		if markup, err := note.Html(); err == nil {
			if md, err := e.converter.Convert(markup); err == nil && strings.TrimSpace(md) != "" {
				return strings.TrimSpace(md)
			}
		}
	}
	return plain
}

// sectionFind looks for selector in the heading's parent and, when the
// section body is a sibling block, in the grandparent.
func sectionFind(heading *goquery.Selection, selector string) *goquery.Selection {
	if found := heading.Parent().Find(selector); found.Length() > 0 {
		return found
	}
	return heading.Parent().Parent().Find(selector)
}
