package config

import (
	"github.com/JaimeStill/moodai/internal/companion"
	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/internal/payment"
	"github.com/JaimeStill/moodai/internal/reports"
)

var companionEnv = &companion.Env{
	Provider:    "MOODAI_COMPANION_PROVIDER",
	Model:       "MOODAI_COMPANION_MODEL",
	APIKey:      "MOODAI_COMPANION_API_KEY",
	Temperature: "MOODAI_COMPANION_TEMPERATURE",
	MaxTokens:   "MOODAI_COMPANION_MAX_TOKENS",
	Timeout:     "MOODAI_COMPANION_TIMEOUT",
	MaxRetries:  "MOODAI_COMPANION_MAX_RETRIES",
	Seed:        "MOODAI_COMPANION_SEED",
}

var mailEnv = &notifications.Env{
	Host:           "MOODAI_MAIL_HOST",
	Port:           "MOODAI_MAIL_PORT",
	Username:       "MOODAI_MAIL_USERNAME",
	Password:       "MOODAI_MAIL_PASSWORD",
	From:           "MOODAI_MAIL_FROM",
	SessionSummary: "MOODAI_MAIL_SESSION_SUMMARY",
}

var paymentEnv = &payment.Env{
	KeyID:              "MOODAI_PAYMENT_KEY_ID",
	KeySecret:          "MOODAI_PAYMENT_KEY_SECRET",
	BaseURL:            "MOODAI_PAYMENT_BASE_URL",
	Currency:           "MOODAI_PAYMENT_CURRENCY",
	ConsultationAmount: "MOODAI_PAYMENT_CONSULTATION_AMOUNT",
	Timeout:            "MOODAI_PAYMENT_TIMEOUT",
}

var reportsEnv = &reports.Env{
	Enabled:     "MOODAI_REPORTS_ENABLED",
	Interval:    "MOODAI_REPORTS_INTERVAL",
	Concurrency: "MOODAI_REPORTS_CONCURRENCY",
}
