package extract

import (
	"fmt"
	"strings"
	"time"
)

const (
	// LogDelimiter separates the timestamp of a log line from its message.
	LogDelimiter = "> "
	// LogTimestampLayout is month/day/year hour:minute:second on a 24h clock.
	LogTimestampLayout = "01/02/2006 15:04:05"
)

type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// ParseLogLines parses "03/14/2024 08:05:00> boot complete" lines in order.
// Timestamps are interpreted in loc (UTC when nil). Blank lines are skipped,
// any other line that does not parse fails the whole log.
func ParseLogLines(text, layout string, loc *time.Location) ([]LogEntry, error) {
	if loc == nil {
		loc = time.UTC
	}
	var entries []LogEntry
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		stamp, message, found := strings.Cut(line, LogDelimiter)
		if !found {
			return nil, fmt.Errorf(
				"%w: line %d has no %q delimiter: %q",
				ErrMalformedTimestamp, i+1, LogDelimiter, line,
			)
		}
		ts, err := time.ParseInLocation(layout, stamp, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedTimestamp, i+1, err)
		}
		entries = append(entries, LogEntry{Timestamp: ts, Message: message})
	}
	return entries, nil
}
