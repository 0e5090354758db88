// Package mood maps free-text chat messages to one of five mood labels and
// provides the static display lookups (color, intensity score) keyed by label.
package mood

import (
	"strings"
)

// Label is a detected mood. The string value is the canonical serialization
// used in API payloads, history records, recommendation tags, and chart keys.
type Label string

const (
	Motivated Label = "Motivated"
	Neutral   Label = "Neutral"
	Stressed  Label = "Stressed"
	BurntOut  Label = "Burnt Out"
	Anxious   Label = "Anxious"
)

var labels = []Label{Motivated, Neutral, Stressed, BurntOut, Anxious}

// Labels returns every label in display order.
func Labels() []Label {
	out := make([]Label, len(labels))
	copy(out, labels)
	return out
}

// Valid reports whether l is one of the five canonical labels.
func (l Label) Valid() bool {
	for _, v := range labels {
		if l == v {
			return true
		}
	}
	return false
}

func (l Label) String() string {
	return string(l)
}

// Parse resolves s to a canonical label. Matching is case-insensitive and
// accepts the compact BurntOut, burnt_out, and burnt-out spellings.
func Parse(s string) (Label, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	if key == "burntout" {
		key = "burnt out"
	}

	for _, l := range labels {
		if strings.ToLower(string(l)) == key {
			return l, nil
		}
	}
	return "", ErrUnknownLabel
}
