package router

import (
	"time"

	"routerscrape/internal/extract"
)

// AssembleSystemLog parses the raw contents of the system log textarea.
func AssembleSystemLog(text string, layout Layout, loc *time.Location) ([]extract.LogEntry, error) {
	return extract.ParseLogLines(text, layout.LogTimestampLayout, loc)
}
