package mock

import "github.com/fwojciec/bisscrape"

var _ bisscrape.LinkCollector = (*LinkCollector)(nil)

// LinkCollector is a mock implementation of bisscrape.LinkCollector.
type LinkCollector struct {
	CollectLinksFn func(html, baseURL string, filter *bisscrape.LinkFilter) ([]bisscrape.Link, error)
}

func (c *LinkCollector) CollectLinks(html, baseURL string, filter *bisscrape.LinkFilter) ([]bisscrape.Link, error) {
	return c.CollectLinksFn(html, baseURL, filter)
}

var _ bisscrape.ProfileLinkExtractor = (*ProfileLinkExtractor)(nil)

// ProfileLinkExtractor is a mock implementation of bisscrape.ProfileLinkExtractor.
type ProfileLinkExtractor struct {
	ExtractProfileLinksFn func(html, baseURL string) ([]bisscrape.ProfileLink, error)
}

func (e *ProfileLinkExtractor) ExtractProfileLinks(html, baseURL string) ([]bisscrape.ProfileLink, error) {
	return e.ExtractProfileLinksFn(html, baseURL)
}

var _ bisscrape.CharacterExtractor = (*CharacterExtractor)(nil)

// CharacterExtractor is a mock implementation of bisscrape.CharacterExtractor.
type CharacterExtractor struct {
	ExtractCharacterFn func(html, pageURL string) (*bisscrape.Character, error)
}

func (e *CharacterExtractor) ExtractCharacter(html, pageURL string) (*bisscrape.Character, error) {
	return e.ExtractCharacterFn(html, pageURL)
}
