// Package event provides the event model and strict parsing of the
// completion service's JSON output.
package event

import "time"

// Event represents a single market event.
type Event struct {
	Date        time.Time // calendar date, midnight UTC
	Title       string
	Description string    // empty when the source row has no description
	StartTime   time.Time // time of day only; combine with Date via StartsAt
	EndTime     time.Time
}

// StartsAt combines the event date and start time into a single local
// (floating) datetime.
func (e *Event) StartsAt() time.Time {
	return combine(e.Date, e.StartTime)
}

// EndsAt combines the event date and end time into a single local
// (floating) datetime.
func (e *Event) EndsAt() time.Time {
	return combine(e.Date, e.EndTime)
}

func combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}
