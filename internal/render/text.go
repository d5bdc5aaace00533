// Package render formats values for terminal output.
package render

import (
	"fmt"
	"strings"
	"time"
)

// Remaining describes how long until a token expires, or how long ago it did.
func Remaining(d time.Duration) string {
	if d < 0 {
		return "expired " + humanize(-d) + " ago"
	}
	return "expires in " + humanize(d)
}

func humanize(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// Wrap performs simple word wrapping to the given width.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for i, paragraph := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		lineLen := 0
		for j, word := range strings.Fields(paragraph) {
			wlen := len(word)
			if j > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if j > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
	}
	return result.String()
}
