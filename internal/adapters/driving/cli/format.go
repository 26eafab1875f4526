package cli

import (
	"fmt"
	"strings"
	"time"
)

func formatExperience(years *int) string {
	if years == nil {
		return "not stated"
	}
	if *years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", *years)
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return d.Round(time.Millisecond).String()
}

// joinLimited joins at most n items and summarises the rest.
func joinLimited(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:n], ", "), len(items)-n)
}
