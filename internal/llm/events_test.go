package llm

import (
	"strings"
	"testing"
	"time"
)

func TestExtractEvents(t *testing.T) {
	reply := `[{"date":"2025-03-04","title":"Market Day","description":null,` +
		`"start_time":"08:00:00","end_time":"16:00:00"}]`
	server, lastPrompt := newReplyServer(t, reply)
	client := NewClientWithBaseURL("test-key", "test/model", server.URL)

	tableHTML := `<table><tbody><tr><td>Market Day</td></tr></tbody></table>`
	events, err := client.ExtractEvents(tableHTML, 3)
	if err != nil {
		t.Fatalf("ExtractEvents() unexpected error: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("ExtractEvents() returned %d events, want 1", len(events))
	}
	evt := events[0]
	if evt.Title != "Market Day" {
		t.Errorf("Title = %q", evt.Title)
	}
	if evt.Description != "" {
		t.Errorf("Description = %q, want empty for null", evt.Description)
	}
	if got, want := evt.StartsAt(), time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("StartsAt() = %v, want %v", got, want)
	}
	if got, want := evt.EndsAt(), time.Date(2025, 3, 4, 16, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("EndsAt() = %v, want %v", got, want)
	}

	// The prompt must embed both the table and the month reference grid so
	// the service can expand phrases like "every Thursday" itself.
	if !strings.Contains(*lastPrompt, tableHTML) {
		t.Error("prompt should embed the table HTML")
	}
	if !strings.Contains(*lastPrompt, "Mo Tu We Th Fr Sa Su") {
		t.Error("prompt should embed the month calendar grid")
	}
	if !strings.Contains(*lastPrompt, "JSON array") {
		t.Error("prompt should demand a JSON array reply")
	}
}

func TestExtractEvents_MalformedJSON(t *testing.T) {
	server, _ := newReplyServer(t, "Sure! Here are the events you asked for:")
	client := NewClientWithBaseURL("test-key", "test/model", server.URL)

	_, err := client.ExtractEvents("<table></table>", 3)
	if err == nil {
		t.Fatal("ExtractEvents() expected error for non-JSON reply")
	}
	if !strings.Contains(err.Error(), "JSON array") {
		t.Errorf("error = %v, should mention the expected JSON array shape", err)
	}
}

func TestExtractEvents_InvalidElement(t *testing.T) {
	// Second element is missing its times.
	reply := `[` +
		`{"date":"2025-03-04","title":"Market Day","description":null,"start_time":"08:00:00","end_time":"16:00:00"},` +
		`{"date":"2025-03-06","title":"Craft Fair","description":null}` +
		`]`
	server, _ := newReplyServer(t, reply)
	client := NewClientWithBaseURL("test-key", "test/model", server.URL)

	_, err := client.ExtractEvents("<table></table>", 3)
	if err == nil {
		t.Fatal("ExtractEvents() expected error for invalid element")
	}
	if !strings.Contains(err.Error(), "event 1") {
		t.Errorf("error = %v, should identify the offending element", err)
	}
}
