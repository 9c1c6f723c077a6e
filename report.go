package bisscrape

import "time"

// LinkReport is the persisted result of collecting links from a roster page.
type LinkReport struct {
	RunID         string         `json:"runId"`
	BaseURL       string         `json:"baseUrl"`
	CollectedAt   time.Time      `json:"collectedAt"`
	TotalLinks    int            `json:"totalLinks"`
	FilteredLinks int            `json:"filteredLinks"`
	Links         []Link         `json:"links"`
	ProfileLinks  []ProfileLink  `json:"profileLinks"`
	Categories    LinkCategories `json:"categories"`
}

// CharacterReport is the persisted result of scraping character pages.
type CharacterReport struct {
	RunID           string        `json:"runId"`
	BaseURL         string        `json:"baseUrl"`
	ScrapedAt       time.Time     `json:"scrapedAt"`
	TotalCharacters int           `json:"totalCharacters"`
	Characters      []*Character  `json:"characters"`
	Failures        []PageFailure `json:"failures,omitempty"`
}

// PageFailure records a page that could not be fetched or extracted.
type PageFailure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// ReportWriter persists reports.
type ReportWriter interface {
	// WriteLinkReport stores the report and returns its location.
	WriteLinkReport(report *LinkReport) (string, error)

	// WriteCharacterReport stores the report and returns its location.
	WriteCharacterReport(report *CharacterReport) (string, error)
}
