package pipeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/jhutchins/kirkgate-events/internal/config"
	"github.com/jhutchins/kirkgate-events/internal/httperr"
	"github.com/jhutchins/kirkgate-events/internal/llm"
	"github.com/jhutchins/kirkgate-events/internal/scraper"
	"github.com/jhutchins/kirkgate-events/internal/storage"
)

const testPage = `<html><body><main>` +
	`<table><tbody><tr><td>Market Day</td><td>4 March</td><td>08:00 - 16:00</td></tr></tbody></table>` +
	`</main></body></html>`

const testEventsJSON = `[{"date":"2025-03-04","title":"Market Day","description":null,` +
	`"start_time":"08:00:00","end_time":"16:00:00"}]`

// newTestPipeline wires a pipeline against two local servers: one serving
// the events page, one playing the completion service. The completion
// server answers the month prompt with "3" and the extraction prompt with
// testEventsJSON.
func newTestPipeline(t *testing.T, pageStatus int, pageBody string) (*Pipeline, *int, *int) {
	t.Helper()

	fetchCount := new(int)
	pageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*fetchCount++
		if pageStatus != http.StatusOK {
			w.WriteHeader(pageStatus)
		}
		w.Write([]byte(pageBody))
	}))
	t.Cleanup(pageServer.Close)

	completionCount := new(int)
	completionServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*completionCount++

		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) != 1 {
			t.Errorf("unexpected completion request: %v", err)
		}

		content := testEventsJSON
		if strings.Contains(req.Messages[0].Content, "which month") {
			content = "3"
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": content}},
			},
		})
	}))
	t.Cleanup(completionServer.Close)

	cfg := &config.Config{
		EventsPageURL:    pageServer.URL,
		OpenRouterAPIKey: "test-key",
		OpenRouterModel:  "test/model",
		ArtifactsDir:     t.TempDir(),
		ICSFileName:      "events.ics",
		HTMLFileName:     "events.html",
		ScraperUserAgent: "test-agent/1.0",
		LogLevel:         "ERROR",
	}

	store, err := storage.New(cfg.ArtifactsDir)
	if err != nil {
		t.Fatalf("storage.New() unexpected error: %v", err)
	}

	p := &Pipeline{
		cfg:     cfg,
		scraper: scraper.New(cfg.EventsPageURL, cfg.ScraperUserAgent),
		llm:     llm.NewClientWithBaseURL(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, completionServer.URL),
		store:   store,
	}

	return p, fetchCount, completionCount
}

func TestRun_EndToEnd(t *testing.T) {
	p, fetchCount, completionCount := newTestPipeline(t, http.StatusOK, testPage)

	result, err := p.Run()
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if !result.Changed {
		t.Error("Changed = false on first run, want true")
	}
	if result.EventCount != 1 {
		t.Errorf("EventCount = %d, want 1", result.EventCount)
	}
	if *fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", *fetchCount)
	}
	if *completionCount != 2 { // month + events
		t.Errorf("completion count = %d, want 2", *completionCount)
	}

	// Snapshot holds the extracted table, not the whole page.
	snapshot, err := os.ReadFile(p.store.Path(p.cfg.HTMLFileName))
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !strings.HasPrefix(string(snapshot), "<table>") || strings.Contains(string(snapshot), "<main>") {
		t.Errorf("snapshot = %q, want bare table markup", snapshot)
	}

	ics, err := os.ReadFile(result.CalendarPath)
	if err != nil {
		t.Fatalf("reading calendar: %v", err)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"DTSTART:20250304T080000",
		"DTEND:20250304T160000",
		"SUMMARY:Market Day",
		"END:VCALENDAR",
	} {
		if !strings.Contains(string(ics), want) {
			t.Errorf("calendar missing %q", want)
		}
	}
}

func TestRun_SecondRunShortCircuits(t *testing.T) {
	p, fetchCount, completionCount := newTestPipeline(t, http.StatusOK, testPage)

	first, err := p.Run()
	if err != nil {
		t.Fatalf("first Run() unexpected error: %v", err)
	}
	calendarBefore, err := os.ReadFile(first.CalendarPath)
	if err != nil {
		t.Fatalf("reading calendar: %v", err)
	}

	second, err := p.Run()
	if err != nil {
		t.Fatalf("second Run() unexpected error: %v", err)
	}

	if second.Changed {
		t.Error("Changed = true on unchanged page, want false")
	}
	if *fetchCount != 2 {
		t.Errorf("fetch count = %d, want exactly one fetch per run", *fetchCount)
	}
	if *completionCount != 2 {
		t.Errorf("completion count = %d, second run must not call the completion service", *completionCount)
	}

	calendarAfter, err := os.ReadFile(first.CalendarPath)
	if err != nil {
		t.Fatalf("reading calendar: %v", err)
	}
	if string(calendarBefore) != string(calendarAfter) {
		t.Error("calendar file should be untouched when the page is unchanged")
	}
}

func TestRun_FetchFailure(t *testing.T) {
	p, _, completionCount := newTestPipeline(t, http.StatusInternalServerError, "boom")

	_, err := p.Run()
	if err == nil {
		t.Fatal("Run() expected error for failing fetch")
	}

	var statusErr *httperr.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Run() error = %v, want wrapped *httperr.StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", statusErr.StatusCode)
	}

	if *completionCount != 0 {
		t.Errorf("completion count = %d, nothing downstream should run", *completionCount)
	}
	if _, err := os.Stat(p.store.Path(p.cfg.ICSFileName)); !os.IsNotExist(err) {
		t.Error("no calendar file should be written on failure")
	}
}

func TestRun_MissingTable(t *testing.T) {
	p, _, completionCount := newTestPipeline(t, http.StatusOK,
		`<html><body><main><p>no events this month</p></main></body></html>`)

	_, err := p.Run()
	if err == nil {
		t.Fatal("Run() expected error for page without events table")
	}
	if *completionCount != 0 {
		t.Errorf("completion count = %d, structural failure should stop the run", *completionCount)
	}
	if _, statErr := os.Stat(p.store.Path(p.cfg.HTMLFileName)); !os.IsNotExist(statErr) {
		t.Error("no snapshot should be written when extraction fails")
	}
}

func TestRun_BadMonthReply(t *testing.T) {
	p, _, _ := newTestPipeline(t, http.StatusOK, testPage)

	// Replace the completion client with one whose server answers the month
	// prompt with prose.
	completionServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "It looks like March to me!"}},
			},
		})
	}))
	defer completionServer.Close()
	p.llm = llm.NewClientWithBaseURL("test-key", "test/model", completionServer.URL)

	_, err := p.Run()
	if err == nil {
		t.Fatal("Run() expected error for unparseable month reply")
	}
	if !strings.Contains(err.Error(), "month") {
		t.Errorf("error = %v, should mention the month parse", err)
	}

	// Snapshot was already persisted, but no calendar may exist.
	if _, statErr := os.Stat(p.store.Path(p.cfg.ICSFileName)); !os.IsNotExist(statErr) {
		t.Error("no calendar file should be written when month resolution fails")
	}
}
