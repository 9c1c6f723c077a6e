package mock

import "github.com/fwojciec/bisscrape"

var _ bisscrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of bisscrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
