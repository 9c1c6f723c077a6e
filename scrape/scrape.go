// Package scrape orchestrates roster and character scraping. It
// coordinates fetching, login handling, extraction and snapshot storage.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/bisscrape"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages extracted in parallel when
// Scraper.Concurrency is not set.
const DefaultConcurrency = 4

// Scraper fetches roster and character pages and turns them into reports.
// Fetches are sequential; extraction runs in parallel.
type Scraper struct {
	Fetcher       bisscrape.Fetcher
	Links         bisscrape.LinkCollector
	Profiles      bisscrape.ProfileLinkExtractor
	Characters    bisscrape.CharacterExtractor
	Authenticator bisscrape.Authenticator
	Snapshots     bisscrape.SnapshotService
	Limiter       *HostLimiter
	Logger        *slog.Logger
	Concurrency   int
	RetryDelays   []time.Duration

	// Now and NewRunID default to time.Now and uuid.NewString.
	Now      func() time.Time
	NewRunID func() string
}

// ProgressEvent reports progress during a character scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Name      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Roster fetches the roster page at baseURL and collects its links and
// character profile links. A nil filter scopes links to baseURL's domain.
func (s *Scraper) Roster(ctx context.Context, baseURL string, filter *bisscrape.LinkFilter) (*bisscrape.LinkReport, error) {
	if filter == nil {
		f, err := bisscrape.NewLinkFilter(baseURL)
		if err != nil {
			return nil, err
		}
		filter = f
	}

	html, err := s.fetch(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	all, err := s.Links.CollectLinks(html, baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("collect links: %w", err)
	}
	links := make([]bisscrape.Link, 0, len(all))
	for _, l := range all {
		if filter.InScope(l.URL) {
			links = append(links, l)
		}
	}

	profiles, err := s.Profiles.ExtractProfileLinks(html, baseURL)
	if err != nil {
		return nil, fmt.Errorf("extract profile links: %w", err)
	}

	return &bisscrape.LinkReport{
		RunID:         s.newRunID(),
		BaseURL:       baseURL,
		CollectedAt:   s.now(),
		TotalLinks:    len(all),
		FilteredLinks: len(links),
		Links:         links,
		ProfileLinks:  profiles,
		Categories:    bisscrape.Categorize(links, filter.Domain),
	}, nil
}

// Character fetches and extracts a single character page.
func (s *Scraper) Character(ctx context.Context, pageURL string) (*bisscrape.Character, error) {
	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return s.Characters.ExtractCharacter(html, pageURL)
}

// pageResult holds the outcome of processing a single profile.
type pageResult struct {
	character *bisscrape.Character
	err       error
}

// Full scrapes every profile in links. Pages that fail are recorded in the
// report's failures and the run continues. When Snapshots is set, every
// extracted character is stored under the report's run ID.
// The progress callback, if provided, receives events as scraping proceeds.
func (s *Scraper) Full(ctx context.Context, baseURL string, links []bisscrape.ProfileLink, progress ProgressFunc) (*bisscrape.CharacterReport, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(links)
	var (
		mu        sync.Mutex
		completed int
	)
	report := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if event.Type == ProgressCompleted || event.Type == ProgressFailed {
			completed++
			event.Completed = completed
		}
		event.Total = total
		progress(event)
	}

	report(ProgressEvent{Type: ProgressStarted})

	results := make([]pageResult, total)
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, link := range links {
		html, err := s.fetch(ctx, link.URL)
		if err != nil {
			if ctx.Err() != nil {
				_ = g.Wait()
				return nil, ctx.Err()
			}
			results[i].err = err
			report(ProgressEvent{Type: ProgressFailed, URL: link.URL, Name: link.PlayerName, Error: err})
			continue
		}

		g.Go(func() error {
			c, err := s.Characters.ExtractCharacter(html, link.URL)
			results[i] = pageResult{character: c, err: err}
			if err != nil {
				report(ProgressEvent{Type: ProgressFailed, URL: link.URL, Name: link.PlayerName, Error: err})
				return nil
			}
			report(ProgressEvent{Type: ProgressCompleted, URL: link.URL, Name: c.Name})
			return nil
		})
	}
	_ = g.Wait()

	out := &bisscrape.CharacterReport{
		RunID:      s.newRunID(),
		BaseURL:    baseURL,
		ScrapedAt:  s.now(),
		Characters: []*bisscrape.Character{},
	}
	for i, r := range results {
		if r.err != nil {
			out.Failures = append(out.Failures, bisscrape.PageFailure{
				URL:   links[i].URL,
				Error: r.err.Error(),
			})
			continue
		}
		out.Characters = append(out.Characters, r.character)
	}
	out.TotalCharacters = len(out.Characters)

	if s.Snapshots != nil {
		s.storeSnapshots(ctx, out)
	}

	report(ProgressEvent{Type: ProgressFinished, Completed: total})

	return out, nil
}

// storeSnapshots saves each character of report. Failures are logged and
// do not abort the run.
func (s *Scraper) storeSnapshots(ctx context.Context, report *bisscrape.CharacterReport) {
	for _, c := range report.Characters {
		snap := &bisscrape.Snapshot{RunID: report.RunID, Character: c}
		if err := s.Snapshots.CreateSnapshot(ctx, snap); err != nil {
			s.logger().Warn("store snapshot failed", "url", c.URL, "err", err)
		}
	}
}

// fetch retrieves pageURL honoring the rate limit and retry policy. A login
// gate is handed to the Authenticator and the page is fetched once more.
func (s *Scraper) fetch(ctx context.Context, pageURL string) (string, error) {
	html, err := s.fetchOnce(ctx, pageURL)
	if err == nil || !bisscrape.NeedsInteractiveAuth(err) || s.Authenticator == nil {
		return html, err
	}

	s.logger().Info("login required", "url", pageURL)
	if err := s.Authenticator.Authenticate(ctx, pageURL); err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	return s.fetchOnce(ctx, pageURL)
}

func (s *Scraper) fetchOnce(ctx context.Context, pageURL string) (string, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, pageURL); err != nil {
			return "", err
		}
	}
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays(3, time.Second)
	}
	return FetchWithRetry(ctx, pageURL, s.Fetcher.Fetch, s.logger(), delays)
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Scraper) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func (s *Scraper) newRunID() string {
	if s.NewRunID == nil {
		return uuid.NewString()
	}
	return s.NewRunID()
}
