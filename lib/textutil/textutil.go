package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases name and drops all whitespace, "W LAN " and
// "wlan" normalize the same.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// MatchName returns the first candidate equal to name after normalization.
func MatchName(name string, candidates []string) (string, bool) {
	name = NormalizeName(name)
	for _, c := range candidates {
		if NormalizeName(c) == name {
			return c, true
		}
	}
	return "", false
}
