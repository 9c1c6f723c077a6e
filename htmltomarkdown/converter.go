package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/bisscrape"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Converter implements bisscrape.Converter at compile time.
var _ bisscrape.Converter = (*Converter)(nil)

// Converter sanitizes user-authored HTML and converts it to Markdown.
type Converter struct {
	conv   *converter.Converter
	policy *bluemonday.Policy
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{
		conv:   conv,
		policy: bluemonday.UGCPolicy(),
	}
}

// Convert strips scripts, styles and event handlers from html and
// transforms the rest into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", bisscrape.Errorf(bisscrape.EINVALID, "empty HTML input")
	}

	clean := c.policy.Sanitize(html)

	result, err := c.conv.ConvertString(clean)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
