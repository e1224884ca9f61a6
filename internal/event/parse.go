package event

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// timeLayouts are the accepted ISO time-of-day shapes. The completion
// service usually replies with seconds but sometimes drops them.
var timeLayouts = []string{"15:04:05", "15:04"}

// eventJSON is the wire shape of one element in the completion reply.
// Pointers distinguish "missing" from "empty" so validation can name the
// absent field.
type eventJSON struct {
	Date        *string `json:"date"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
}

// ParseEvents parses a completion reply strictly as a JSON array of events.
// Any malformed element fails the whole parse, identified by its index; no
// partial acceptance. An end time earlier than the start time is accepted
// as-is: the upstream table occasionally lists times that way and calendar
// applications render such events regardless.
func ParseEvents(data []byte) ([]*Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing completion reply as JSON array: %w", err)
	}

	events := make([]*Event, 0, len(raw))
	for i, msg := range raw {
		evt, err := parseElement(msg)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, evt)
	}

	return events, nil
}

func parseElement(msg json.RawMessage) (*Event, error) {
	var w eventJSON
	if err := json.Unmarshal(msg, &w); err != nil {
		return nil, err
	}

	if w.Date == nil {
		return nil, fmt.Errorf("missing required field %q", "date")
	}
	if w.Title == nil {
		return nil, fmt.Errorf("missing required field %q", "title")
	}
	if w.StartTime == nil {
		return nil, fmt.Errorf("missing required field %q", "start_time")
	}
	if w.EndTime == nil {
		return nil, fmt.Errorf("missing required field %q", "end_time")
	}

	date, err := time.Parse(dateLayout, *w.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *w.Date, err)
	}

	start, err := parseTimeOfDay(*w.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time: %w", err)
	}

	end, err := parseTimeOfDay(*w.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end_time: %w", err)
	}

	evt := &Event{
		Date:      date,
		Title:     *w.Title,
		StartTime: start,
		EndTime:   end,
	}
	if w.Description != nil {
		evt.Description = *w.Description
	}

	return evt, nil
}

func parseTimeOfDay(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", s)
}
