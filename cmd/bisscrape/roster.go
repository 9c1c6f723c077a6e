package main

import (
	"fmt"

	"github.com/fwojciec/bisscrape"
)

// Run executes the roster command.
func (c *RosterCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Scraping roster %s\n", deps.BaseURL)

	report, err := deps.Scraper.Roster(deps.Ctx, deps.BaseURL, deps.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisscrape.ErrorMessage(err))
		return err
	}

	path, err := deps.Reports.WriteLinkReport(report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisscrape.ErrorMessage(err))
		return err
	}

	cat := report.Categories
	fmt.Fprintf(deps.Stdout, "  Found %d links (%d after filtering)\n", report.TotalLinks, report.FilteredLinks)
	fmt.Fprintf(deps.Stdout, "  Internal %d, external %d, images %d, documents %d, navigation %d\n",
		len(cat.Internal), len(cat.External), len(cat.Images), len(cat.Documents), len(cat.Navigation))
	fmt.Fprintf(deps.Stdout, "  Found %d profile links\n", len(report.ProfileLinks))
	fmt.Fprintf(deps.Stdout, "Saved links to %s\n", path)

	return nil
}
