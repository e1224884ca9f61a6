package llm

import (
	"fmt"
	"strings"
	"time"
)

// monthGrid renders a plain-text month calendar, Monday first:
//
//	     March 2025
//	Mo Tu We Th Fr Sa Su
//	                1  2
//	 3  4  5  6  7  8  9
//	10 11 12 13 14 15 16
//	...
//
// It is embedded in the extraction prompt as a reference for expanding
// relative date phrases.
func monthGrid(year int, month time.Month) string {
	var b strings.Builder

	header := fmt.Sprintf("%s %d", month, year)
	if pad := (20 - len(header)) / 2; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString("Mo Tu We Th Fr Sa Su\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7 // column index, Monday first
	lastDay := first.AddDate(0, 1, -1).Day()

	cells := make([]string, 0, 7)
	for i := 0; i < offset; i++ {
		cells = append(cells, "  ")
	}
	for day := 1; day <= lastDay; day++ {
		cells = append(cells, fmt.Sprintf("%2d", day))
		if len(cells) == 7 {
			b.WriteString(strings.Join(cells, " "))
			b.WriteByte('\n')
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		b.WriteString(strings.Join(cells, " "))
		b.WriteByte('\n')
	}

	return b.String()
}
