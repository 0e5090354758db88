// Package chat handles a user's chat message end to end: classify the mood,
// pick recommendations, compose a reply, and record the mood.
package chat

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/history"
	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/internal/recommendations"
	"github.com/JaimeStill/moodai/internal/users"
)

// SuggestionLimit is the number of recommendations attached to a reply.
const SuggestionLimit = 5

// ErrEmptyMessage indicates a blank chat message.
var ErrEmptyMessage = errors.New("message cannot be empty")

// Request is the body of a chat message.
type Request struct {
	Message string `json:"message"`
}

// Response is the reply to a chat message.
type Response struct {
	Mood             mood.Label                       `json:"mood"`
	Color            string                           `json:"color"`
	Score            int                              `json:"score"`
	Sentiment        int                              `json:"sentiment"`
	Response         string                           `json:"response"`
	Source           string                           `json:"source"`
	Escalate         bool                             `json:"escalate"`
	SuggestedActions []recommendations.Recommendation `json:"suggested_actions"`
	Timestamp        time.Time                        `json:"timestamp"`
}

// Classifier resolves a message to a mood.
type Classifier interface {
	Classify(ctx context.Context, text string) (mood.Result, error)
}

// Recommender returns recommendations tagged with a mood.
type Recommender interface {
	ForMood(ctx context.Context, label mood.Label, limit int) ([]recommendations.Recommendation, error)
}

// Recorder appends a detected mood to a user's history.
type Recorder interface {
	Append(ctx context.Context, userID uuid.UUID, label mood.Label, message string) (*history.Entry, error)
}

// Directory resolves user accounts.
type Directory interface {
	Find(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// SessionNotifier sends the per-message session summary email.
type SessionNotifier interface {
	SessionSummary(to string, data notifications.SessionData)
}

// System defines the public contract for chat operations.
type System interface {
	Handler() *Handler

	// Respond processes one message from userID.
	Respond(ctx context.Context, userID uuid.UUID, message string) (*Response, error)
}

// MapHTTPStatus maps chat errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyMessage):
		return http.StatusBadRequest
	}
	return mood.MapHTTPStatus(err)
}
