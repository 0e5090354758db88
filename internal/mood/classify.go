package mood

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/JaimeStill/moodai/internal/sentiment"
)

// Sentiment cut points. Scores are integer word-polarity sums.
const (
	// NegativeThreshold and below is strongly negative and resolves to Stressed.
	NegativeThreshold = -2
	// StrongPositiveThreshold and above is strongly positive and resolves to Motivated.
	StrongPositiveThreshold = 3
	// Scores above MildPositiveThreshold are mildly positive and resolve to Motivated.
	MildPositiveThreshold = 1
)

const excerptLen = 50

type rule struct {
	label   Label
	pattern *regexp.Regexp
}

func keywords(terms ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + strings.Join(terms, "|") + `)\b`)
}

// Negative groups in priority order. Sadness folds into Stressed.
var negativeRules = []rule{
	{BurntOut, keywords(
		"burnout", "burnt out", "burned out", "exhausted", "drained", "can'?t take",
		"giving up", "no energy", "overwhelmed", "breaking down", "can'?t cope",
		"too tired", "worn out", "depleted", "finished",
	)},
	{Anxious, keywords(
		"anxious", "anxiety", "worried sick", "worried", "nervous", "panic", "scared",
		"fear", "restless", "uneasy", "tense", "afraid", "terrified", "frightened",
		"paranoid", "on edge",
	)},
	{Stressed, keywords(
		"sad", "unhappy", "depressed", "down", "low", "miserable", "upset", "hurt",
		"crying", "tears", "lonely", "alone", "heartbroken", "devastated", "blue",
		"gloomy", "sorrowful",
	)},
	{Stressed, keywords(
		"stressed", "stress", "pressure", "deadline", "too much", "overworked",
		"frustrated", "struggling", "difficult", "hard time", "under pressure",
		"swamped", "overwhelm",
	)},
}

var motivatedPattern = keywords(
	"motivated", "excited", "great", "awesome", "happy", "energized", "productive",
	"accomplished", "proud", "confident", "fantastic", "amazing", "wonderful",
	"excellent", "thrilled", "inspired", "pumped", "ready",
)

// Result is the outcome of classifying one message.
type Result struct {
	Label     Label `json:"mood"`
	Sentiment int   `json:"sentiment"`
}

// Classifier maps text to a Label. It holds no mutable state and is safe for
// concurrent use.
type Classifier struct {
	scorer sentiment.Scorer
	logger *slog.Logger
}

// NewClassifier creates a Classifier. A nil logger discards diagnostics.
func NewClassifier(scorer sentiment.Scorer, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Classifier{
		scorer: scorer,
		logger: logger.With("system", "mood"),
	}
}

// Classify resolves text to exactly one label. Keyword evidence always outranks
// the sentiment scalar, and negative groups outrank motivation keywords.
func (c *Classifier) Classify(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrInvalidInput
	}

	score, err := c.scorer.Score(text)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrClassificationUnavailable, err)
	}

	res := Result{
		Label:     resolve(normalize(text), score),
		Sentiment: score,
	}

	c.logger.DebugContext(ctx, "mood detected",
		"excerpt", excerpt(text),
		"mood", res.Label,
		"sentiment", res.Sentiment,
	)

	return res, nil
}

// Label is Classify without the sentiment detail.
func (c *Classifier) Label(ctx context.Context, text string) (Label, error) {
	res, err := c.Classify(ctx, text)
	return res.Label, err
}

func resolve(text string, score int) Label {
	for _, r := range negativeRules {
		if r.pattern.MatchString(text) {
			return r.label
		}
	}

	switch {
	case score <= NegativeThreshold:
		return Stressed
	case motivatedPattern.MatchString(text):
		return Motivated
	case score >= StrongPositiveThreshold, score > MildPositiveThreshold:
		return Motivated
	}

	return Neutral
}

func normalize(text string) string {
	return strings.ReplaceAll(text, "’", "'")
}

func excerpt(text string) string {
	r := []rune(text)
	if len(r) <= excerptLen {
		return text
	}
	return string(r[:excerptLen]) + "..."
}
