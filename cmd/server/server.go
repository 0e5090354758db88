package main

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/internal/infrastructure"
)

// Server owns the infrastructure, the mounted API module and the listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra.Lifecycle.Context(), infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info("server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"companion", cfg.Companion.Provider,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start brings up infrastructure, then the API runtime, then the listener.
// Pending session-summary emails are drained during shutdown.
func (s *Server) Start() error {
	lc := s.infra.Lifecycle

	steps := []struct {
		name  string
		start func() error
	}{
		{"infrastructure", s.infra.Start},
		{"api", s.modules.API.Start},
		{"http", func() error { return s.http.Start(lc) }},
	}
	for _, step := range steps {
		if err := step.start(); err != nil {
			return fmt.Errorf("start %s: %w", step.name, err)
		}
	}

	notifier := s.modules.API.Runtime.Notifier
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		notifier.Wait()
	})

	go func() {
		lc.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("shutting down", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}

// Run starts the server and blocks until ctx is done, then shuts down within
// timeout.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	if err := s.Start(); err != nil {
		s.Shutdown(timeout)
		return err
	}
	<-ctx.Done()
	return s.Shutdown(timeout)
}
