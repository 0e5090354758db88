package recommendations

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/pkg/pagination"
)

// System defines the public contract for recommendation operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Recommendation], error)

	// ForMood returns up to limit recommendations tagged with label, oldest first.
	ForMood(ctx context.Context, label mood.Label, limit int) ([]Recommendation, error)

	Find(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	Create(ctx context.Context, cmd CreateCommand) (*Recommendation, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Seed upserts cmds by content and returns how many rows were written.
	Seed(ctx context.Context, cmds []CreateCommand) (int, error)
}
