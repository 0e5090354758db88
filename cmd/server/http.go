package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/pkg/lifecycle"
)

type httpServer struct {
	srv     *http.Server
	logger  *slog.Logger
	drainIn time.Duration
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	read, header, write, idle, shutdown := cfg.Timeouts()
	return &httpServer{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       read,
			ReadHeaderTimeout: header,
			WriteTimeout:      write,
			IdleTimeout:       idle,
		},
		logger:  logger.With("system", "http"),
		drainIn: shutdown,
	}
}

// Start binds the listener before returning so a taken port fails startup.
func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}

	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.drainIn)
		defer cancel()

		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Error("drain incomplete", "error", err)
			return
		}
		s.logger.Info("http server stopped")
	})

	return nil
}
