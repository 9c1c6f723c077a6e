package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/fs"
	"github.com/fwojciec/bisscrape/goquery"
	"github.com/fwojciec/bisscrape/htmltomarkdown"
	bhttp "github.com/fwojciec/bisscrape/http"
	"github.com/fwojciec/bisscrape/rod"
	"github.com/fwojciec/bisscrape/scrape"
	bslog "github.com/fwojciec/bisscrape/slog"
	"github.com/fwojciec/bisscrape/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin answers confirmation and login prompts.
	Stdin io.Reader

	// Fetcher replaces the browser or HTTP session when set. Used for
	// end-to-end testing.
	Fetcher bisscrape.Fetcher

	// SQLite database opened when --db is given.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  bufio.NewReader(m.Stdin),
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bisscrape"),
		kong.Description("Scrape That's My BIS rosters and character wishlists"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		kong.Configuration(YAMLConfig),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bisscrape --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(stderr, cli.Verbose)

	deps.BaseURL = cli.URL
	deps.Filter, err = cli.LinkFilter()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", bisscrape.ErrorMessage(err))
		return err
	}
	deps.Reports = fs.NewReportWriter(cli.Output)

	if cmd == "history" && cli.DB == "" {
		return fmt.Errorf("history needs a snapshot database. Pass --db or set BISSCRAPE_DB")
	}
	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set BISSCRAPE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Snapshots = sqlite.NewSnapshotService(m.DB)
	}

	if cmd != "history" {
		fetcher := m.Fetcher
		if fetcher == nil {
			f, closeFn, err := openFetcher(&cli.Globals)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeFn(); err != nil {
					logger.Warn("close session", "err", err)
				}
			}()
			fetcher = f
		}
		deps.Scraper = newScraper(&cli.Globals, fetcher, deps, logger)
	}

	return kongCtx.Run(deps)
}

// newScraper wires extraction, logging and login handling around fetcher.
func newScraper(g *Globals, fetcher bisscrape.Fetcher, deps *Dependencies, logger *slog.Logger) *scrape.Scraper {
	var opts []goquery.CharacterOption
	if g.NoteMarkdown {
		opts = append(opts, goquery.WithNoteConverter(htmltomarkdown.NewConverter()))
	}

	return &scrape.Scraper{
		Fetcher:    bslog.NewLoggingFetcher(fetcher, logger),
		Links:      goquery.NewLinkCollector(),
		Profiles:   bslog.NewLoggingProfileLinkExtractor(goquery.NewProfileExtractor(), logger),
		Characters: bslog.NewLoggingCharacterExtractor(goquery.NewCharacterExtractor(opts...), logger),
		Authenticator: &ConsoleAuthenticator{
			In:          deps.Stdin,
			Out:         deps.Stdout,
			Interactive: !g.Headless && !g.HTTP,
		},
		Snapshots:   deps.Snapshots,
		Limiter:     scrape.NewHostLimiter(time.Duration(g.Delay) * time.Second),
		Logger:      logger,
		Concurrency: g.Concurrency,
		RetryDelays: scrape.DefaultRetryDelays(g.Retries, time.Duration(g.Delay)*time.Second),
	}
}

// openFetcher starts the session selected by the global flags. The returned
// function releases it.
func openFetcher(g *Globals) (bisscrape.Fetcher, func() error, error) {
	timeout := time.Duration(g.Timeout) * time.Second
	cookies := fs.NewCookieStore(g.Cookies)
	gate := goquery.NewGateDetector()

	if g.HTTP {
		opts := []bhttp.Option{bhttp.WithTimeout(timeout), bhttp.WithGateDetector(gate)}
		if g.UserAgent != "" {
			opts = append(opts, bhttp.WithUserAgent(g.UserAgent))
		}
		f, err := bhttp.NewFetcher(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create HTTP session: %w", err)
		}
		saved, err := cookies.LoadCookies()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load cookies from %q: %w", cookies.Path(), err)
		}
		f.LoadCookies(saved)
		return f, f.Close, nil
	}

	session, err := rod.NewSession(
		rod.WithHeadless(g.Headless),
		rod.WithUserDataDir(g.ProfileDir),
		rod.WithCookieStore(cookies),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
	}
	opts := []rod.FetcherOption{rod.WithFetchTimeout(timeout), rod.WithGateDetector(gate)}
	if g.UserAgent != "" {
		opts = append(opts, rod.WithUserAgent(g.UserAgent))
	}
	f := rod.NewFetcher(session, opts...)
	return f, func() error {
		return errors.Join(f.Close(), session.Close())
	}, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
