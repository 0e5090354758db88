package main

import (
	"context"

	"github.com/JaimeStill/moodai/internal/api"
	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/internal/infrastructure"
	"github.com/JaimeStill/moodai/pkg/module"
)

type Modules struct {
	API *api.Module
}

func NewModules(ctx context.Context, infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(ctx, cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API.Module)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.HandleStatus("GET /healthz", "ok")
	router.HandleStatus("GET /readyz", "ready", infra.Lifecycle.Ready, infra.Database.Ready)
	return router
}
