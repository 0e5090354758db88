package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/companion"
	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/internal/recommendations"
)

// Deps are the collaborators a chat service orchestrates. Users and Notifier
// are only consulted when session summaries are enabled.
type Deps struct {
	Classifier      Classifier
	Recommendations Recommender
	Composer        companion.Composer
	History         Recorder
	Users           Directory
	Notifier        SessionNotifier
}

type service struct {
	deps           Deps
	sessionSummary bool
	logger         *slog.Logger
	maxBody        int64
	now            func() time.Time
}

// New creates a chat service implementing the System interface.
func New(deps Deps, sessionSummary bool, logger *slog.Logger, maxBody int64) System {
	return &service{
		deps:           deps,
		sessionSummary: sessionSummary && deps.Users != nil && deps.Notifier != nil,
		logger:         logger.With("system", "chat"),
		maxBody:        maxBody,
		now:            time.Now,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.maxBody)
}

func (s *service) Respond(ctx context.Context, userID uuid.UUID, message string) (*Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	result, err := s.deps.Classifier.Classify(ctx, message)
	if err != nil {
		if !errors.Is(err, mood.ErrClassificationUnavailable) {
			return nil, err
		}
		s.logger.Warn("classification unavailable, using neutral", "user_id", userID, "error", err)
		result = mood.Result{Label: mood.Neutral}
	}
	label := result.Label

	recs, err := s.deps.Recommendations.ForMood(ctx, label, SuggestionLimit)
	if err != nil {
		s.logger.Error("recommendations unavailable", "mood", label, "error", err)
		recs = []recommendations.Recommendation{}
	}

	reply, err := s.deps.Composer.Compose(ctx, companion.Request{
		Label:       label,
		Message:     message,
		Suggestions: suggestions(recs),
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.deps.History.Append(ctx, userID, label, message); err != nil {
		s.logger.Error("history append failed", "user_id", userID, "mood", label, "error", err)
	}

	if s.sessionSummary {
		s.notifySession(ctx, userID, label, reply.Text)
	}

	return &Response{
		Mood:             label,
		Color:            mood.Color(label),
		Score:            mood.Score(label),
		Sentiment:        result.Sentiment,
		Response:         reply.Text,
		Source:           reply.Source,
		Escalate:         reply.Escalate,
		SuggestedActions: recs,
		Timestamp:        s.now().UTC(),
	}, nil
}

func (s *service) notifySession(ctx context.Context, userID uuid.UUID, label mood.Label, reply string) {
	u, err := s.deps.Users.Find(ctx, userID)
	if err != nil {
		s.logger.Warn("session summary skipped", "user_id", userID, "error", err)
		return
	}

	s.deps.Notifier.SessionSummary(u.Email, notifications.SessionData{
		Username: u.Username,
		Mood:     string(label),
		Color:    mood.Color(label),
		Response: reply,
	})
}

func suggestions(recs []recommendations.Recommendation) []companion.Suggestion {
	out := make([]companion.Suggestion, len(recs))
	for i, r := range recs {
		out[i] = companion.Suggestion{
			Type:     string(r.Type),
			Content:  r.Content,
			Duration: r.Duration,
		}
	}
	return out
}
