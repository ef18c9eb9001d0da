package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

// the label is lazy so the first colon on the line separates it from the
// value, "MAC Address: AA:BB:CC" keeps its colons in the value.
var keyValueLine = regexp.MustCompile(`^\s*(\S.*?)\s*:\s*(\S.*?)\s*$`)

// TextMap is an ordered label -> value mapping scraped from free text.
type TextMap struct {
	keys   []string
	values map[string]string
}

func NewTextMap() TextMap {
	return TextMap{values: map[string]string{}}
}

// Set keeps the position of the first appearance of label and the latest
// value.
func (m *TextMap) Set(label, value string) {
	if m.values == nil {
		m.values = map[string]string{}
	}
	if _, ok := m.values[label]; !ok {
		m.keys = append(m.keys, label)
	}
	m.values[label] = value
}

func (m TextMap) Get(label string) (string, bool) {
	v, ok := m.values[label]
	return v, ok
}

func (m TextMap) Len() int {
	return len(m.keys)
}

// Keys returns the labels in order of first appearance.
func (m TextMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Require returns the value of label or an ErrMissingField naming the most
// similar label that is present.
func (m TextMap) Require(label string) (string, error) {
	v, ok := m.values[label]
	if ok {
		return v, nil
	}
	if closest := m.closest(label); closest != "" {
		return "", fmt.Errorf("%w: %q (closest label: %q)", ErrMissingField, label, closest)
	}
	return "", fmt.Errorf("%w: %q", ErrMissingField, label)
}

const minLabelSimilarity = 0.8

func (m TextMap) closest(label string) string {
	best := ""
	bestScore := minLabelSimilarity
	for _, k := range m.keys {
		score := matchr.JaroWinkler(label, k, false)
		if score > bestScore {
			best = k
			bestScore = score
		}
	}
	return best
}

// ParseKeyValueLines collects every "Label: value" line of text. Lines that
// do not have that shape are skipped.
func ParseKeyValueLines(text string) TextMap {
	out := NewTextMap()
	for _, line := range strings.Split(text, "\n") {
		match := keyValueLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		out.Set(match[1], match[2])
	}
	return out
}
