package bisscrape

import (
	"strings"
	"time"
)

// Quality is an item's rarity tier.
type Quality string

// Quality tiers, encoded in markup as the class tokens q0 through q5.
const (
	QualityPoor      Quality = "Poor"
	QualityCommon    Quality = "Common"
	QualityUncommon  Quality = "Uncommon"
	QualityRare      Quality = "Rare"
	QualityEpic      Quality = "Epic"
	QualityLegendary Quality = "Legendary"
	QualityUnknown   Quality = "Unknown"
)

// qualityTokens is checked in order; the lowest tier present wins.
var qualityTokens = []struct {
	token   string
	quality Quality
}{
	{"q0", QualityPoor},
	{"q1", QualityCommon},
	{"q2", QualityUncommon},
	{"q3", QualityRare},
	{"q4", QualityEpic},
	{"q5", QualityLegendary},
}

// ParseQuality maps a class attribute to a quality tier. It never fails:
// attributes without a tier token map to QualityUnknown.
func ParseQuality(class string) Quality {
	tokens := strings.Fields(class)
	for _, q := range qualityTokens {
		for _, t := range tokens {
			if t == q.token {
				return q.quality
			}
		}
	}
	return QualityUnknown
}

// Character is everything extracted from one character page.
type Character struct {
	Name         string     `json:"name,omitempty"`
	Class        string     `json:"class,omitempty"`
	Race         string     `json:"race,omitempty"`
	Level        *int       `json:"level,omitempty"`
	Professions  []string   `json:"professions"`
	Wishlists    []Wishlist `json:"wishlists"`
	LootReceived []Item     `json:"lootReceived"`
	Recipes      []string   `json:"recipes"`
	PublicNote   string     `json:"publicNote,omitempty"`
	URL          string     `json:"url"`
	ScrapedAt    time.Time  `json:"scrapedAt"`
}

// ItemCount returns the number of items across all wishlists.
func (c *Character) ItemCount() int {
	var n int
	for _, w := range c.Wishlists {
		n += len(w.Items)
	}
	return n
}

// Wishlist is a named, ordered list of wanted items.
type Wishlist struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item is a single wishlist or loot entry. Name is always set; every other
// field is absent when its markup was missing.
type Item struct {
	Name       string   `json:"name"`
	URL        string   `json:"url,omitempty"`
	CatalogID  string   `json:"catalogId,omitempty"`
	Quality    Quality  `json:"quality"`
	IconURL    string   `json:"iconUrl,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Priority   *int     `json:"priority,omitempty"`
	AddedAt    string   `json:"addedAt,omitempty"`
	AddedBy    string   `json:"addedBy,omitempty"`
	Note       string   `json:"note,omitempty"`
	Tooltip    *Tooltip `json:"tooltip,omitempty"`
}

// Tooltip holds attributes recovered from an item's tooltip text.
type Tooltip struct {
	Domain        string      `json:"domain,omitempty"`
	ItemLevel     *int        `json:"itemLevel,omitempty"`
	Armor         *int        `json:"armor,omitempty"`
	Durability    *Durability `json:"durability,omitempty"`
	RequiredLevel *int        `json:"requiredLevel,omitempty"`
	Stats         []Stat      `json:"stats,omitempty"`
	Slot          string      `json:"slot,omitempty"`
	Binding       string      `json:"binding,omitempty"`
	Classes       []string    `json:"classes,omitempty"`
	SetInfo       *SetInfo    `json:"setInfo,omitempty"`
}

// IsZero reports whether no tooltip field was recovered.
func (t *Tooltip) IsZero() bool {
	return t == nil || (t.Domain == "" && t.ItemLevel == nil && t.Armor == nil &&
		t.Durability == nil && t.RequiredLevel == nil && len(t.Stats) == 0 &&
		t.Slot == "" && t.Binding == "" && len(t.Classes) == 0 && t.SetInfo == nil)
}

// Durability is the "Durability A / B" tooltip line.
type Durability struct {
	Current int `json:"current"`
	Maximum int `json:"max"`
}

// Stat is a single stat bonus such as "+25 Agility" or "+2% Haste".
type Stat struct {
	Stat       string `json:"stat"`
	Value      int    `json:"value"`
	Percentage bool   `json:"isPercentage"`
}

// SetInfo describes item set membership and its bonuses.
type SetInfo struct {
	Name          string     `json:"name"`
	CurrentPieces int        `json:"currentPieces"`
	TotalPieces   int        `json:"totalPieces"`
	Bonuses       []SetBonus `json:"bonuses,omitempty"`
}

// SetBonus is a "(N) Set: bonus" line.
type SetBonus struct {
	Pieces int    `json:"pieces"`
	Bonus  string `json:"bonus"`
}

// CharacterExtractor builds a Character from a rendered character page.
type CharacterExtractor interface {
	// ExtractCharacter never fails on missing markup; absent fields are left
	// empty. An error is returned only when html cannot be parsed at all.
	ExtractCharacter(html string, pageURL string) (*Character, error)
}
