package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/pkg/lifecycle"
)

// System defines the public contract for weekly reports.
type System interface {
	Handler() *Handler

	// Start schedules RunAll every configured interval when reports are enabled.
	Start(lc *lifecycle.Coordinator) error

	// Generate builds userID's report over the last WindowDays.
	Generate(ctx context.Context, userID uuid.UUID) (*Report, error)

	// Send generates userID's report, emails it, and archives it when storage
	// is enabled.
	Send(ctx context.Context, userID uuid.UUID) (*Report, error)

	// RunAll sends a report to every user.
	RunAll(ctx context.Context) (RunResult, error)

	// Archived returns userID's report archived on date (YYYY-MM-DD).
	Archived(ctx context.Context, userID uuid.UUID, date string) (*Report, error)
}
