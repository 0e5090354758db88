// Package infrastructure builds the shared systems every MoodAI domain package
// draws on: the lifecycle coordinator, logger, PostgreSQL pool, report archive
// and recommendation cache.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/pkg/cache"
	"github.com/JaimeStill/moodai/pkg/database"
	"github.com/JaimeStill/moodai/pkg/lifecycle"
	"github.com/JaimeStill/moodai/pkg/logging"
	"github.com/JaimeStill/moodai/pkg/storage"
)

type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Cache     cache.System
}

// New constructs every system without dialing anything. With archiving
// switched off, Storage is storage.Disabled().
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()

	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logging init failed: %w", err)
	}
	logger = logger.With("service", "moodai", "version", cfg.Version)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store := storage.Disabled()
	if cfg.Storage.Enabled {
		store, err = storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Cache:     cache.New(&cfg.Cache, logger),
	}, nil
}

// Start registers each system's hooks with the coordinator. Connections are
// made when the coordinator runs its startup hooks.
func (i *Infrastructure) Start() error {
	for name, sys := range map[string]interface {
		Start(*lifecycle.Coordinator) error
	}{
		"database": i.Database,
		"storage":  i.Storage,
		"cache":    i.Cache,
	} {
		if err := sys.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("%s start failed: %w", name, err)
		}
	}
	return nil
}
