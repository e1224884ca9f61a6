package llm

import (
	"time"

	"github.com/jhutchins/kirkgate-events/internal/event"
)

const eventsPromptHeader = `Can you please format the following HTML into a JSON array? DO NOT include
any commentary, only the JSON response.

The returned object should be as follows:

Use the following schemas:

- date: ISO date
- title (from Event field in table): string
- description (from Event field in table): string OR null
- start_time (half of Time field in table): ISO time
- end_time (half of Time field in table): ISO time

If the event is on weekly throughout the month (e.g. "every Thursday"),
please create a JSON object for every applicable date. Here's a calendar for
the month for you to reference:

`

// ExtractEvents asks the completion service to convert the events table into
// structured event records. The prompt embeds a plain-text calendar of the
// resolved month (current year) so relative phrases like "every Thursday"
// can be expanded into concrete dates by the service; no recurrence math
// happens locally. The reply is validated strictly; any malformed element
// fails the whole extraction.
func (c *Client) ExtractEvents(tableHTML string, month int) ([]*event.Event, error) {
	prompt := eventsPromptHeader +
		monthGrid(time.Now().Year(), time.Month(month)) +
		"\nHere is the HTML to format:\n\n" +
		"```html\n" + tableHTML + "\n```\n"

	reply, err := c.Complete(prompt)
	if err != nil {
		return nil, err
	}

	return event.ParseEvents([]byte(reply))
}
