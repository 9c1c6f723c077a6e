package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/bisscrape"
)

// Ensure LoggingCharacterExtractor implements bisscrape.CharacterExtractor.
var _ bisscrape.CharacterExtractor = (*LoggingCharacterExtractor)(nil)

// LoggingCharacterExtractor wraps a CharacterExtractor with logging.
type LoggingCharacterExtractor struct {
	next   bisscrape.CharacterExtractor
	logger *slog.Logger
}

// NewLoggingCharacterExtractor creates a new LoggingCharacterExtractor.
func NewLoggingCharacterExtractor(next bisscrape.CharacterExtractor, logger *slog.Logger) *LoggingCharacterExtractor {
	return &LoggingCharacterExtractor{next: next, logger: logger}
}

// ExtractCharacter delegates to the wrapped extractor and logs what was found.
func (e *LoggingCharacterExtractor) ExtractCharacter(html, pageURL string) (c *bisscrape.Character, err error) {
	defer func(begin time.Time) {
		var name string
		var wishlists, items int
		if c != nil {
			name = c.Name
			wishlists = len(c.Wishlists)
			items = c.ItemCount()
		}
		e.logger.Info("character extraction",
			"url", pageURL,
			"name", name,
			"wishlists", wishlists,
			"items", items,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractCharacter(html, pageURL)
}

// Ensure LoggingProfileLinkExtractor implements bisscrape.ProfileLinkExtractor.
var _ bisscrape.ProfileLinkExtractor = (*LoggingProfileLinkExtractor)(nil)

// LoggingProfileLinkExtractor wraps a ProfileLinkExtractor with logging.
type LoggingProfileLinkExtractor struct {
	next   bisscrape.ProfileLinkExtractor
	logger *slog.Logger
}

// NewLoggingProfileLinkExtractor creates a new LoggingProfileLinkExtractor.
func NewLoggingProfileLinkExtractor(next bisscrape.ProfileLinkExtractor, logger *slog.Logger) *LoggingProfileLinkExtractor {
	return &LoggingProfileLinkExtractor{next: next, logger: logger}
}

// ExtractProfileLinks delegates to the wrapped extractor and logs the count.
func (e *LoggingProfileLinkExtractor) ExtractProfileLinks(html, baseURL string) (links []bisscrape.ProfileLink, err error) {
	defer func(begin time.Time) {
		e.logger.Info("profile discovery",
			"url", baseURL,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractProfileLinks(html, baseURL)
}
