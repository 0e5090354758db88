// Package history records each detected mood per user and derives the chart
// and summary views built from those records.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/mood"
)

// ExcerptLen bounds the stored message excerpt, in runes.
const ExcerptLen = 100

// Day window bounds for chart and summary queries.
const (
	DefaultChartDays   = 30
	DefaultSummaryDays = 7
	MaxDays            = 365
)

// Entry is one recorded mood.
type Entry struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Mood       mood.Label `json:"mood"`
	Message    string     `json:"message"`
	RecordedAt time.Time  `json:"recorded_at"`
}

// ChartPoint is an Entry projected onto the mood chart.
type ChartPoint struct {
	RecordedAt time.Time  `json:"recorded_at"`
	Mood       mood.Label `json:"mood"`
	Score      int        `json:"score"`
	Color      string     `json:"color"`
}

// LabelCount is the number of entries recorded with one label.
type LabelCount struct {
	Mood  mood.Label `json:"mood"`
	Count int        `json:"count"`
	Color string     `json:"color"`
}

// Summary aggregates the entries recorded in [From, To).
type Summary struct {
	From         time.Time    `json:"from"`
	To           time.Time    `json:"to"`
	Entries      int          `json:"entries"`
	Counts       []LabelCount `json:"counts"`
	AverageScore float64      `json:"average_score"`
	Dominant     *mood.Label  `json:"dominant"`
}

// NewChartPoint projects an entry onto the chart.
func NewChartPoint(at time.Time, l mood.Label) ChartPoint {
	return ChartPoint{
		RecordedAt: at,
		Mood:       l,
		Score:      mood.Score(l),
		Color:      mood.Color(l),
	}
}

// Summarize builds a Summary from per-label counts. Counts lists every label in
// display order. Dominant is the most frequent label, ties going to the label
// listed first, and is nil when nothing was recorded.
func Summarize(from, to time.Time, counts map[mood.Label]int) Summary {
	s := Summary{
		From:   from,
		To:     to,
		Counts: make([]LabelCount, 0, len(mood.Labels())),
	}

	var weighted, best int
	for _, l := range mood.Labels() {
		n := counts[l]
		s.Counts = append(s.Counts, LabelCount{Mood: l, Count: n, Color: mood.Color(l)})
		s.Entries += n
		weighted += n * mood.Score(l)
		if n > best {
			best = n
			dominant := l
			s.Dominant = &dominant
		}
	}

	if s.Entries > 0 {
		s.AverageScore = float64(weighted) / float64(s.Entries)
	}
	return s
}

// Excerpt truncates message to ExcerptLen runes.
func Excerpt(message string) string {
	r := []rune(message)
	if len(r) <= ExcerptLen {
		return message
	}
	return string(r[:ExcerptLen])
}

// ClampDays bounds a requested day window to [1, MaxDays], substituting def for
// non-positive values.
func ClampDays(days, def int) int {
	if days <= 0 {
		return def
	}
	return min(days, MaxDays)
}
