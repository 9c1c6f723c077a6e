package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/bisscrape"
)

// tooltipRule recovers one tooltip field from the tooltip text. Rules are
// independent: a rule that does not match leaves its field unset.
type tooltipRule func(text string, t *bisscrape.Tooltip)

// tooltipRules are applied in order.
var tooltipRules = []tooltipRule{
	parseItemLevel,
	parseArmor,
	parseDurability,
	parseRequiredLevel,
	parseStats,
	parseSlot,
	parseBinding,
	parseClasses,
	parseSetInfo,
}

var (
	slotNames  = []string{"Head", "Neck", "Shoulder", "Back", "Chest", "Wrist", "Hands", "Waist", "Legs", "Feet", "Finger", "Trinket", "Weapon", "Off Hand", "Shield", "Ranged", "Ammo"}
	classNames = []string{"Warrior", "Paladin", "Hunter", "Rogue", "Priest", "Shaman", "Mage", "Warlock", "Monk", "Druid", "Death Knight", "Demon Hunter", "Evoker"}
)

// wordPattern matches any of names as a whole word, ignoring case.
func wordPattern(names []string) *regexp.Regexp {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// canonical returns the vocabulary spelling of match.
func canonical(names []string, match string) string {
	for _, n := range names {
		if strings.EqualFold(n, match) {
			return n
		}
	}
	return match
}

var (
	itemLevelPattern     = regexp.MustCompile(`(?i)Item Level[:\s]*(\d+)`)
	armorPattern         = regexp.MustCompile(`(?i)(\d+)\s*Armor`)
	durabilityPattern    = regexp.MustCompile(`(?i)Durability\s+(\d+)\s*/\s*(\d+)`)
	requiredLevelPattern = regexp.MustCompile(`(?i)Requires Level[:\s]*(\d+)`)
	slotPattern          = wordPattern(slotNames)
	bindingPattern       = regexp.MustCompile(`(?i)(Binds when picked up|Binds when equipped|Binds to account)`)
	classListPattern     = regexp.MustCompile(`(?i)Classes:\s*([^<\n]+)`)
	classNamePattern     = wordPattern(classNames)
	setNamePattern       = regexp.MustCompile(`(?m)^[ \t]*([^(\n]+?)[ \t]*\((\d+)/(\d+)\)`)
	setBonusPattern      = regexp.MustCompile(`(?i)\((\d+)\)\s*Set\s*:\s*([^<\n]+)`)
)

// statPatterns lists the recognized stat bonuses. Several may match.
var statPatterns = []struct {
	stat       string
	pattern    *regexp.Regexp
	percentage bool
}{
	{"Agility", regexp.MustCompile(`(?i)\+(\d+)\s*Agility`), false},
	{"Stamina", regexp.MustCompile(`(?i)\+(\d+)\s*Stamina`), false},
	{"Intellect", regexp.MustCompile(`(?i)\+(\d+)\s*Intellect`), false},
	{"Strength", regexp.MustCompile(`(?i)\+(\d+)\s*Strength`), false},
	{"Spirit", regexp.MustCompile(`(?i)\+(\d+)\s*Spirit`), false},
	{"Attack Power", regexp.MustCompile(`(?i)\+(\d+)\s*Attack Power`), false},
	{"Spell Power", regexp.MustCompile(`(?i)\+(\d+)\s*Spell Power`), false},
	{"Critical Strike", regexp.MustCompile(`(?i)\+(\d+)%\s*Crit`), true},
	{"Haste", regexp.MustCompile(`(?i)\+(\d+)%\s*Haste`), true},
	{"Hit", regexp.MustCompile(`(?i)\+(\d+)%\s*Hit`), true},
}

// ParseTooltip recovers item attributes from tooltip text. It returns nil
// when no rule matched.
func ParseTooltip(text string) *bisscrape.Tooltip {
	t := &bisscrape.Tooltip{}
	for _, rule := range tooltipRules {
		rule(text, t)
	}
	if t.IsZero() {
		return nil
	}
	return t
}

func parseItemLevel(text string, t *bisscrape.Tooltip) {
	t.ItemLevel = matchInt(itemLevelPattern, text)
}

func parseArmor(text string, t *bisscrape.Tooltip) {
	t.Armor = matchInt(armorPattern, text)
}

func parseDurability(text string, t *bisscrape.Tooltip) {
	m := durabilityPattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	current, err1 := strconv.Atoi(m[1])
	maximum, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return
	}
	t.Durability = &bisscrape.Durability{Current: current, Maximum: maximum}
}

func parseRequiredLevel(text string, t *bisscrape.Tooltip) {
	t.RequiredLevel = matchInt(requiredLevelPattern, text)
}

func parseStats(text string, t *bisscrape.Tooltip) {
	for _, p := range statPatterns {
		v := matchInt(p.pattern, text)
		if v == nil {
			continue
		}
		t.Stats = append(t.Stats, bisscrape.Stat{Stat: p.stat, Value: *v, Percentage: p.percentage})
	}
}

func parseSlot(text string, t *bisscrape.Tooltip) {
	if m := slotPattern.FindStringSubmatch(text); m != nil {
		t.Slot = canonical(slotNames, m[1])
	}
}

func parseBinding(text string, t *bisscrape.Tooltip) {
	if m := bindingPattern.FindStringSubmatch(text); m != nil {
		t.Binding = m[1]
	}
}

// parseClasses prefers an explicit "Classes: a, b" line and falls back to
// the first class name mentioned anywhere.
func parseClasses(text string, t *bisscrape.Tooltip) {
	var classes []string
	if m := classListPattern.FindStringSubmatch(text); m != nil {
		for _, c := range strings.Split(m[1], ",") {
			if c = strings.TrimSpace(c); c != "" {
				classes = append(classes, c)
			}
		}
	} else if m := classNamePattern.FindStringSubmatch(text); m != nil {
		classes = []string{canonical(classNames, m[1])}
	}
	t.Classes = unique(classes)
}

func parseSetInfo(text string, t *bisscrape.Tooltip) {
	m := setNamePattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	current, _ := strconv.Atoi(m[2])
	total, _ := strconv.Atoi(m[3])
	info := &bisscrape.SetInfo{
		Name:          strings.TrimSpace(m[1]),
		CurrentPieces: current,
		TotalPieces:   total,
	}
	for _, b := range setBonusPattern.FindAllStringSubmatch(text, -1) {
		pieces, _ := strconv.Atoi(b[1])
		info.Bonuses = append(info.Bonuses, bisscrape.SetBonus{
			Pieces: pieces,
			Bonus:  strings.TrimSpace(b[2]),
		})
	}
	t.SetInfo = info
}

// matchInt returns the first capture group of re in text as an int.
func matchInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &v
}

func unique(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
