// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"net/http"

	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/internal/infrastructure"
	"github.com/JaimeStill/moodai/pkg/middleware"
	"github.com/JaimeStill/moodai/pkg/module"
)

// Module is the mounted API together with the domain it serves.
type Module struct {
	*module.Module
	Runtime *Runtime
	Domain  *Domain
}

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(ctx context.Context, cfg *config.Config, infra *infrastructure.Infrastructure) (*Module, error) {
	runtime, err := NewRuntime(ctx, cfg, infra)
	if err != nil {
		return nil, err
	}
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))

	return &Module{
		Module:  m,
		Runtime: runtime,
		Domain:  domain,
	}, nil
}

// Start starts the lifecycle-bound domain systems.
func (m *Module) Start() error {
	return m.Domain.Reports.Start(m.Runtime.Lifecycle)
}
