package history

import (
	"github.com/JaimeStill/moodai/pkg/query"
	"github.com/JaimeStill/moodai/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "mood_history", "h").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("mood", "Mood").
	Project("message", "Message").
	Project("recorded_at", "RecordedAt")

var defaultSort = query.SortField{
	Field:      "RecordedAt",
	Descending: true,
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.UserID,
		&e.Mood,
		&e.Message,
		&e.RecordedAt,
	)
	return e, err
}
