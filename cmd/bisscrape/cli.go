package main

import (
	"bufio"
	"context"
	"io"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     *bufio.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	BaseURL   string
	Filter    *bisscrape.LinkFilter
	Scraper   *scrape.Scraper
	Reports   bisscrape.ReportWriter
	Snapshots bisscrape.SnapshotService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Roster    RosterCmd    `cmd:"" help:"Collect links and character profiles from the roster page"`
	Character CharacterCmd `cmd:"" help:"Scrape a single character page"`
	Full      FullCmd      `cmd:"" help:"Scrape the roster and every character on it"`
	History   HistoryCmd   `cmd:"" help:"List stored character snapshots"`
}

// Globals are flags shared by every command.
type Globals struct {
	Config kong.ConfigFlag `help:"Load flags from a YAML file" placeholder:"FILE"`

	URL        string `name:"url" short:"u" env:"TARGET_URL" default:"https://thatsmybis.com/11258/chonglers/roster" help:"Roster page URL"`
	UserAgent  string `env:"USER_AGENT" help:"Override the user agent"`
	Timeout    int    `env:"TIMEOUT" default:"30" help:"Page load timeout in seconds"`
	Delay      int    `env:"REQUEST_DELAY" default:"1" help:"Seconds between requests to the same host"`
	Retries    int    `env:"MAX_RETRIES" default:"3" help:"Retries for a failed fetch"`
	Headless   bool   `env:"HEADLESS" help:"Hide the browser window"`
	HTTP       bool   `name:"http" help:"Fetch with an HTTP client and saved cookies instead of a browser"`
	Output     string `short:"o" env:"BISSCRAPE_OUTPUT" default:"data" help:"Directory for JSON reports"`
	DB         string `name:"db" env:"BISSCRAPE_DB" help:"SQLite database for character snapshots"`
	Cookies    string `env:"BISSCRAPE_COOKIES" default:"data/cookies.json" help:"Cookie file shared between runs"`
	ProfileDir string `env:"BISSCRAPE_PROFILE_DIR" default:"data/chrome_user_data" help:"Browser profile directory"`

	NoteMarkdown   bool     `help:"Convert public notes to Markdown"`
	Include        []string `sep:"none" placeholder:"PATTERN" help:"Keep only links containing PATTERN or matching /regexp/ (repeatable)"`
	Exclude        []string `sep:"none" placeholder:"PATTERN" help:"Drop links containing PATTERN or matching /regexp/ (repeatable)"`
	FollowExternal bool     `help:"Keep links to other hosts that match --include"`
	Concurrency    int      `short:"c" default:"4" help:"Pages extracted in parallel"`
	Verbose        bool     `short:"v" help:"Enable debug logging"`
}

// LinkFilter builds the roster link filter from the global flags.
func (g *Globals) LinkFilter() (*bisscrape.LinkFilter, error) {
	filter, err := bisscrape.NewLinkFilter(g.URL)
	if err != nil {
		return nil, err
	}
	if filter.Include, err = bisscrape.ParsePatterns(g.Include); err != nil {
		return nil, err
	}
	if filter.Exclude, err = bisscrape.ParsePatterns(g.Exclude); err != nil {
		return nil, err
	}
	filter.FollowExternal = g.FollowExternal
	return filter, nil
}

// RosterCmd is the "roster" subcommand.
type RosterCmd struct{}

// CharacterCmd is the "character" subcommand.
type CharacterCmd struct {
	URL  string `arg:"" help:"Character page URL"`
	JSON bool   `help:"Print the full character as JSON"`
}

// FullCmd is the "full" subcommand.
type FullCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Name  string `arg:"" optional:"" help:"Character name"`
	Run   string `help:"Only show snapshots from this run ID"`
	Limit int    `short:"n" default:"20" help:"Maximum snapshots to show"`
}
