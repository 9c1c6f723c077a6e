package bisscrape

// ProfileLink references a single character's detail page on a roster.
type ProfileLink struct {
	URL         string `json:"url"`
	RelativeURL string `json:"relativeHref"`
	PlayerName  string `json:"playerName"`
	ProfileText string `json:"profileText"`
	HasUserIcon bool   `json:"hasUserIcon"`
	Title       string `json:"title,omitempty"`
	AltTitle    string `json:"altTitle,omitempty"`
}

// ProfileLinkExtractor finds character profile links on a roster page.
type ProfileLinkExtractor interface {
	// ExtractProfileLinks parses html and returns profile links with
	// administrative links (creation, membership, loot log) removed.
	ExtractProfileLinks(html string, baseURL string) ([]ProfileLink, error)
}
