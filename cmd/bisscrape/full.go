package main

import (
	"fmt"

	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/scrape"
)

// Run executes the full command.
func (c *FullCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Step 1: collecting profile links")

	roster, err := deps.Scraper.Roster(deps.Ctx, deps.BaseURL, deps.Filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisscrape.ErrorMessage(err))
		return err
	}

	if len(roster.ProfileLinks) == 0 {
		fmt.Fprintln(deps.Stdout, "No profile links found.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "  Found %d character profiles\n", len(roster.ProfileLinks))

	if !c.Yes {
		ok, err := confirm(deps.Ctx, deps.Stdin, deps.Stdout, "Continue with full scrape?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(deps.Stdout, "Scraping cancelled.")
			return nil
		}
	}

	fmt.Fprintln(deps.Stdout, "Step 2: scraping character pages")

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Name)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %s\n", event.Completed, event.Total, event.URL, bisscrape.ErrorMessage(event.Error))
		}
	}

	report, err := deps.Scraper.Full(deps.Ctx, deps.BaseURL, roster.ProfileLinks, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisscrape.ErrorMessage(err))
		return err
	}

	path, err := deps.Reports.WriteCharacterReport(report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisscrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Completed scraping %d characters (%d failed)\n", report.TotalCharacters, len(report.Failures))
	fmt.Fprintf(deps.Stdout, "Saved character data to %s\n", path)
	if deps.Snapshots != nil {
		fmt.Fprintf(deps.Stdout, "Stored snapshots for run %s\n", report.RunID)
	}

	return nil
}
