package extract

import (
	"fmt"
	"strings"
)

// SliceBetween returns the trimmed text after the first start marker and
// before the next end marker. Without an end marker the rest of text is
// returned.
//
// Markers are matched byte for byte. An end marker is first searched strictly
// after start. Only when none follows, an end marker sharing the trailing bytes
// of start (e.g. "\nID\tMAC\n" directly followed by "\nWAN") closes the
// section, so an empty client table slices to "".
func SliceBetween(text, start, end string) (string, error) {
	idx := strings.Index(text, start)
	if idx < 0 {
		return "", fmt.Errorf("%w: marker %q", ErrSectionNotFound, start)
	}
	bodyStart := idx + len(start)

	if stop := strings.Index(text[bodyStart:], end); stop >= 0 {
		return strings.TrimSpace(text[bodyStart : bodyStart+stop]), nil
	}
	if overlap := markerOverlap(start, end); overlap > 0 &&
		strings.HasPrefix(text[bodyStart-overlap:], end) {
		return "", nil
	}
	return strings.TrimSpace(text[bodyStart:]), nil
}

// markerOverlap is the length of the longest proper suffix of start that is
// also a prefix of end.
func markerOverlap(start, end string) int {
	n := min(len(start)-1, len(end)-1)
	for ; n > 0; n-- {
		if strings.HasSuffix(start, end[:n]) {
			return n
		}
	}
	return 0
}

// ParseTabRows splits text into lines and each line into tab separated
// fields. Blank lines are dropped.
func ParseTabRows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}
