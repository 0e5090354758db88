package mood

const (
	// DefaultColor is returned for labels outside the known set.
	DefaultColor = "#94a3b8"
	// DefaultScore is returned for labels outside the known set.
	DefaultScore = 50
)

var colors = map[Label]string{
	Motivated: "#10b981",
	Neutral:   "#60a5fa",
	Stressed:  "#f59e0b",
	BurntOut:  "#ef4444",
	Anxious:   "#8b5cf6",
}

var scores = map[Label]int{
	Motivated: 100,
	Neutral:   60,
	Anxious:   40,
	Stressed:  30,
	BurntOut:  10,
}

// Info bundles a label with its chart lookups.
type Info struct {
	Label Label  `json:"label"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

// Color returns the chart color for l, or DefaultColor.
func Color(l Label) string {
	if c, ok := colors[l]; ok {
		return c
	}
	return DefaultColor
}

// Score returns the 0-100 chart intensity for l, or DefaultScore.
func Score(l Label) int {
	if s, ok := scores[l]; ok {
		return s
	}
	return DefaultScore
}

// Describe returns the Info for l.
func Describe(l Label) Info {
	return Info{Label: l, Color: Color(l), Score: Score(l)}
}

// Catalog returns the Info of every label in display order.
func Catalog() []Info {
	out := make([]Info, len(labels))
	for i, l := range labels {
		out[i] = Describe(l)
	}
	return out
}
