package api

import (
	"github.com/JaimeStill/moodai/internal/chat"
	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/internal/consultations"
	"github.com/JaimeStill/moodai/internal/history"
	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/internal/recommendations"
	"github.com/JaimeStill/moodai/internal/reports"
	"github.com/JaimeStill/moodai/internal/sentiment"
	"github.com/JaimeStill/moodai/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Classifier      *mood.Classifier
	Users           users.System
	History         history.System
	Recommendations recommendations.System
	Chat            chat.System
	Consultations   consultations.System
	Reports         reports.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	classifier := mood.NewClassifier(sentiment.NewLexicon(), runtime.Logger)

	usersSystem := users.New(
		db,
		runtime.Notifier,
		runtime.Tokens,
		runtime.Logger,
		runtime.MaxBody,
	)

	historySystem := history.New(
		db,
		runtime.Logger,
		runtime.Pagination,
	)

	recsSystem := recommendations.New(
		db,
		runtime.Cache,
		runtime.Logger,
		runtime.Pagination,
		runtime.MaxBody,
	)

	chatSystem := chat.New(
		chat.Deps{
			Classifier:      classifier,
			Recommendations: recsSystem,
			Composer:        runtime.Composer,
			History:         historySystem,
			Users:           usersSystem,
			Notifier:        runtime.Notifier,
		},
		cfg.Mail.SessionSummary,
		runtime.Logger,
		runtime.MaxBody,
	)

	consultationsSystem := consultations.New(
		db,
		runtime.Gateway,
		usersSystem,
		runtime.Notifier,
		cfg.Payment,
		runtime.Logger,
		runtime.MaxBody,
	)

	reportsSystem := reports.New(
		reports.Deps{
			History:  historySystem,
			Users:    usersSystem,
			Notifier: runtime.Notifier,
			Storage:  runtime.Storage,
		},
		cfg.Reports,
		runtime.Logger,
	)

	return &Domain{
		Classifier:      classifier,
		Users:           usersSystem,
		History:         historySystem,
		Recommendations: recsSystem,
		Chat:            chatSystem,
		Consultations:   consultationsSystem,
		Reports:         reportsSystem,
	}
}
