package api

import (
	"context"
	"fmt"

	"github.com/JaimeStill/moodai/internal/companion"
	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/internal/infrastructure"
	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/internal/payment"
	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// shared collaborators domain systems are built from.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	MaxBody    int64
	Tokens     *auth.Tokens
	Notifier   *notifications.Notifier
	Composer   companion.Composer
	Gateway    payment.Gateway
}

// NewRuntime creates an API runtime with a module-scoped logger. The payment
// gateway is nil when no gateway credentials are configured.
func NewRuntime(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	notifier, err := notifications.New(notifications.NewMailer(cfg.Mail, logger), logger)
	if err != nil {
		return nil, fmt.Errorf("notifications init failed: %w", err)
	}

	composer, err := companion.New(ctx, cfg.Companion, logger)
	if err != nil {
		return nil, fmt.Errorf("companion init failed: %w", err)
	}

	var gateway payment.Gateway
	if cfg.Payment.Enabled() {
		gateway, err = payment.New(&cfg.Payment)
		if err != nil {
			return nil, fmt.Errorf("payment init failed: %w", err)
		}
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Cache:     infra.Cache,
		},
		Pagination: cfg.API.Pagination,
		MaxBody:    cfg.API.MaxBodySizeBytes(),
		Tokens:     auth.NewTokens(&cfg.Auth),
		Notifier:   notifier,
		Composer:   composer,
		Gateway:    gateway,
	}, nil
}
