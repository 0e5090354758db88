// Package reports builds weekly mood reports, emails them, and archives them
// to blob storage.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/history"
	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/internal/users"
)

// WindowDays is the span of a weekly report.
const WindowDays = 7

// Report is one user's weekly mood report.
type Report struct {
	UserID      uuid.UUID       `json:"user_id"`
	Username    string          `json:"username"`
	Summary     history.Summary `json:"summary"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// RunResult counts the outcome of a RunAll pass.
type RunResult struct {
	Users  int `json:"users"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Summaries aggregates a user's mood history.
type Summaries interface {
	Summary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*history.Summary, error)
}

// Accounts resolves report recipients.
type Accounts interface {
	Find(ctx context.Context, id uuid.UUID) (*users.User, error)
	All(ctx context.Context) ([]users.User, error)
}

// WeeklyNotifier sends the weekly report email.
type WeeklyNotifier interface {
	WeeklyReport(to string, data notifications.WeeklyData)
}

// ArchiveKey is the blob key a report generated on day is archived under.
func ArchiveKey(userID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("reports/%s/%s.json", userID, day.UTC().Format(time.DateOnly))
}

// EmailData projects the report onto the weekly email template.
func (r Report) EmailData() notifications.WeeklyData {
	data := notifications.WeeklyData{
		Username:     r.Username,
		From:         r.Summary.From.Format("Jan 2"),
		To:           r.Summary.To.Format("Jan 2, 2006"),
		Entries:      r.Summary.Entries,
		AverageScore: r.Summary.AverageScore,
		Counts:       make([]notifications.MoodCount, 0, len(r.Summary.Counts)),
	}

	if r.Summary.Dominant != nil {
		data.Dominant = string(*r.Summary.Dominant)
		data.DominantColor = mood.Color(*r.Summary.Dominant)
	}

	for _, c := range r.Summary.Counts {
		if c.Count == 0 {
			continue
		}
		data.Counts = append(data.Counts, notifications.MoodCount{
			Mood:  string(c.Mood),
			Count: c.Count,
		})
	}

	return data
}
