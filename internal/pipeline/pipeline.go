// Package pipeline sequences the scrape run: fetch, extract, change-detect,
// resolve month, extract events, serialize, persist.
package pipeline

import (
	"fmt"
	"time"

	"github.com/jhutchins/kirkgate-events/internal/calendar"
	"github.com/jhutchins/kirkgate-events/internal/config"
	"github.com/jhutchins/kirkgate-events/internal/llm"
	"github.com/jhutchins/kirkgate-events/internal/logger"
	"github.com/jhutchins/kirkgate-events/internal/scraper"
	"github.com/jhutchins/kirkgate-events/internal/storage"
)

// Pipeline holds the collaborators for one run. It owns both artifact files
// for the duration of the run; concurrent runs against the same artifacts
// directory are not supported.
type Pipeline struct {
	cfg     *config.Config
	scraper *scraper.Client
	llm     *llm.Client
	store   *storage.Storage
}

// Result summarizes a completed run.
type Result struct {
	Changed      bool
	EventCount   int
	CalendarPath string
}

// New wires up a pipeline from the configuration, creating the artifacts
// directory if needed.
func New(cfg *config.Config) (*Pipeline, error) {
	store, err := storage.New(cfg.ArtifactsDir)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:     cfg,
		scraper: scraper.New(cfg.EventsPageURL, cfg.ScraperUserAgent),
		llm:     llm.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel),
		store:   store,
	}, nil
}

// Run executes the pipeline once. When the extracted table matches the
// persisted snapshot the run short-circuits before any completion call and
// returns a Result with Changed false. The calendar file is only written
// after the full event list has validated; no partial output is persisted.
func (p *Pipeline) Run() (*Result, error) {
	started := time.Now()
	html, err := p.scraper.FetchPage()
	if err != nil {
		return nil, fmt.Errorf("fetching events page: %w", err)
	}
	logger.RecordTiming("fetch", time.Since(started))

	tableHTML, err := scraper.ExtractEventsTable(html)
	if err != nil {
		return nil, fmt.Errorf("extracting events table: %w", err)
	}
	logger.Debug("events table extracted", logger.Fields{
		"bytes": len(tableHTML),
	})

	unchanged, err := p.store.Unchanged(p.cfg.HTMLFileName, tableHTML)
	if err != nil {
		return nil, fmt.Errorf("comparing snapshot: %w", err)
	}
	if unchanged {
		logger.Info("no changes detected in events table, skipping", logger.Fields{
			"snapshot": p.store.Path(p.cfg.HTMLFileName),
		})
		return &Result{Changed: false}, nil
	}

	if err := p.store.WriteFile(p.cfg.HTMLFileName, tableHTML); err != nil {
		return nil, fmt.Errorf("persisting snapshot: %w", err)
	}

	started = time.Now()
	month, err := p.llm.ResolveMonth(tableHTML)
	if err != nil {
		return nil, fmt.Errorf("resolving events month: %w", err)
	}
	logger.RecordTiming("resolve_month", time.Since(started))
	logger.Debug("events month resolved", logger.Fields{
		"month": month,
	})

	started = time.Now()
	events, err := p.llm.ExtractEvents(tableHTML, month)
	if err != nil {
		return nil, fmt.Errorf("extracting events: %w", err)
	}
	logger.RecordTiming("extract_events", time.Since(started))

	ics := calendar.Serialize(events)
	if err := p.store.WriteFile(p.cfg.ICSFileName, ics); err != nil {
		return nil, fmt.Errorf("persisting calendar: %w", err)
	}

	calendarPath := p.store.Path(p.cfg.ICSFileName)
	logger.Info("calendar file written", logger.Fields{
		"path":   calendarPath,
		"events": len(events),
	})
	logger.Debug("stage timings", logger.TimingsSnapshot())

	return &Result{
		Changed:      true,
		EventCount:   len(events),
		CalendarPath: calendarPath,
	}, nil
}
