package calendar

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhutchins/kirkgate-events/internal/event"
)

// Location is the fixed venue stamped on every generated event.
const Location = "Leeds Kirkgate Market, Kirkgate, Leeds LS2 7HY, UK"

const prodID = "-//Kirkgate Events//kirkgate-events//EN"

const (
	stampLayout    = "20060102T150405Z"
	floatingLayout = "20060102T150405"
)

// Serialize renders the events into an iCalendar document, one VEVENT per
// event in input order. Output is deterministic except for two fields: each
// event gets a freshly generated UID, and all events of one call share the
// same current-UTC DTSTAMP. DTSTART/DTEND are emitted as floating local
// times (no trailing Z). Lines are joined with CRLF as the format requires.
//
// Only DESCRIPTION newlines are escaped; commas and semicolons in titles
// pass through unescaped, which the consuming calendar apps tolerate.
func Serialize(events []*event.Event) string {
	return serializeAt(events, time.Now().UTC())
}

func serializeAt(events []*event.Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
	}

	stamp := now.UTC().Format(stampLayout)

	for _, evt := range events {
		description := strings.ReplaceAll(evt.Description, "\n", "\\n")

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+uuid.NewString(),
			"DTSTAMP:"+stamp,
			"DTSTART:"+evt.StartsAt().Format(floatingLayout),
			"DTEND:"+evt.EndsAt().Format(floatingLayout),
			"SUMMARY:"+evt.Title,
			"DESCRIPTION:"+description,
			"LOCATION:"+Location,
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")

	return strings.Join(lines, "\r\n")
}
