// Package recommendations stores the wellness activities suggested to users and
// retrieves the ones tagged for a detected mood.
package recommendations

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/mood"
)

// Type is the kind of activity a recommendation describes.
type Type string

const (
	TypeBreathing  Type = "breathing"
	TypeExercise   Type = "exercise"
	TypeGame       Type = "game"
	TypeArticle    Type = "article"
	TypeMovie      Type = "movie"
	TypeMeditation Type = "meditation"
	TypePodcast    Type = "podcast"
	TypeMusic      Type = "music"
)

var types = []Type{
	TypeBreathing, TypeExercise, TypeGame, TypeArticle,
	TypeMovie, TypeMeditation, TypePodcast, TypeMusic,
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	return slices.Contains(types, t)
}

// Difficulty rates how demanding an activity is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

const (
	DefaultDuration   = "5 min"
	DefaultDifficulty = DifficultyEasy
)

// Recommendation is a stored wellness activity.
type Recommendation struct {
	ID          uuid.UUID    `json:"id"`
	Type        Type         `json:"type"`
	Content     string       `json:"content"`
	Description string       `json:"description"`
	MoodTags    []mood.Label `json:"mood_tags"`
	Duration    string       `json:"duration"`
	Difficulty  Difficulty   `json:"difficulty"`
	Link        *string      `json:"link"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CreateCommand carries the fields for a new recommendation. Mood tags accept
// any spelling mood.Parse understands.
type CreateCommand struct {
	Type        Type       `json:"type" yaml:"type"`
	Content     string     `json:"content" yaml:"content"`
	Description string     `json:"description" yaml:"description"`
	MoodTags    []string   `json:"mood_tags" yaml:"mood_tags"`
	Duration    string     `json:"duration" yaml:"duration"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Link        *string    `json:"link,omitempty" yaml:"link"`
}

// Normalize applies defaults, trims text fields, and canonicalizes mood tags.
func (c *CreateCommand) Normalize() ([]mood.Label, error) {
	c.Content = strings.TrimSpace(c.Content)
	c.Description = strings.TrimSpace(c.Description)
	c.Type = Type(strings.ToLower(strings.TrimSpace(string(c.Type))))
	c.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(string(c.Difficulty))))

	if c.Duration == "" {
		c.Duration = DefaultDuration
	}
	if c.Difficulty == "" {
		c.Difficulty = DefaultDifficulty
	}
	if c.Link != nil && strings.TrimSpace(*c.Link) == "" {
		c.Link = nil
	}

	if c.Content == "" {
		return nil, fmt.Errorf("%w: content required", ErrInvalid)
	}
	if !c.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalid, c.Type)
	}
	if !c.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, c.Difficulty)
	}

	tags := make([]mood.Label, 0, len(c.MoodTags))
	for _, t := range c.MoodTags {
		l, err := mood.Parse(t)
		if err != nil {
			return nil, fmt.Errorf("%w: mood tag %q", ErrInvalid, t)
		}
		if !slices.Contains(tags, l) {
			tags = append(tags, l)
		}
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: at least one mood tag required", ErrInvalid)
	}

	return tags, nil
}
