package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/pkg/pagination"
)

// System defines the public contract for mood history operations.
type System interface {
	Handler() *Handler

	// Append records label for userID with an excerpt of message.
	Append(ctx context.Context, userID uuid.UUID, label mood.Label, message string) (*Entry, error)

	// List returns userID's entries, newest first.
	List(ctx context.Context, userID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[Entry], error)

	// Chart returns userID's entries from the last days, oldest first.
	Chart(ctx context.Context, userID uuid.UUID, days int) ([]ChartPoint, error)

	// Summary aggregates userID's entries recorded in [from, to).
	Summary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*Summary, error)
}
