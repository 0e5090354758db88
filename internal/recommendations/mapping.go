package recommendations

import (
	"net/url"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/pkg/query"
	"github.com/JaimeStill/moodai/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "recommendations", "r").
	Project("id", "ID").
	Project("type", "Type").
	Project("content", "Content").
	Project("description", "Description").
	Project("mood_tags", "MoodTags").
	Project("duration", "Duration").
	Project("difficulty", "Difficulty").
	Project("link", "Link").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: false,
}

// Filters contains optional filtering criteria for recommendation queries.
type Filters struct {
	Mood *mood.Label `json:"mood,omitempty"`
	Type *Type       `json:"type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	var m, t any
	if f.Mood != nil {
		m = string(*f.Mood)
	}
	if f.Type != nil {
		t = string(*f.Type)
	}
	return b.
		WhereAny("MoodTags", m).
		WhereEquals("Type", t)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unrecognized mood or type values are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if m := values.Get("mood"); m != "" {
		if l, err := mood.Parse(m); err == nil {
			f.Mood = &l
		}
	}

	if t := values.Get("type"); t != "" {
		if typ := Type(t); typ.Valid() {
			f.Type = &typ
		}
	}

	return f
}

func scanRecommendation(s repository.Scanner) (Recommendation, error) {
	var r Recommendation
	var tags []string

	// pgtype.Map caches scan plans and is not safe to share across goroutines.
	m := pgtype.NewMap()

	err := s.Scan(
		&r.ID,
		&r.Type,
		&r.Content,
		&r.Description,
		m.SQLScanner(&tags),
		&r.Duration,
		&r.Difficulty,
		&r.Link,
		&r.CreatedAt,
	)
	if err != nil {
		return r, err
	}

	r.MoodTags = make([]mood.Label, len(tags))
	for i, t := range tags {
		r.MoodTags[i] = mood.Label(t)
	}

	return r, nil
}

func tagStrings(tags []mood.Label) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
