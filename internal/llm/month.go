package llm

import (
	"fmt"
	"strconv"
	"strings"
)

const monthPrompt = `Can you tell me which month the events in this HTML calendar are for? I want
you to reply with the number of a month in the year, from 1-12, where 1 is
January, 2 is February, and so on.

Reply only with a number, no commentary or anything else.

Here is the HTML to parse:

`

// ResolveMonth asks the completion service which calendar month the events
// table describes and returns it as an integer in [1,12]. A reply that is
// not a bare number is a fatal parse error; there is no retry or fallback.
func (c *Client) ResolveMonth(tableHTML string) (int, error) {
	prompt := monthPrompt + "```html\n" + tableHTML + "\n```\n"

	reply, err := c.Complete(prompt)
	if err != nil {
		return 0, err
	}

	month, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		return 0, fmt.Errorf("parsing month from completion reply %q: %w", reply, err)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("month %d from completion reply is out of range 1-12", month)
	}

	return month, nil
}
