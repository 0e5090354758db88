package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/moodai/internal/api"
	"github.com/JaimeStill/moodai/internal/config"
	"github.com/JaimeStill/moodai/internal/infrastructure"
)

type options struct {
	configPath string
	timeout    time.Duration
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "moodctl",
		Short:         "Operate the MoodAI service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.BaseConfigFile, "Base config file")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Operation timeout")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level for local commands")

	root.AddCommand(
		newClassifyCmd(opts),
		newSeedCmd(opts),
		newReportsCmd(opts),
		newOpenAPICmd(opts),
	)

	return root
}

// session is a started service stack for commands that touch the database.
type session struct {
	infra   *infrastructure.Infrastructure
	runtime *api.Runtime
	domain  *api.Domain
	cfg     *config.Config
}

func openSession(ctx context.Context, opts *options) (*session, error) {
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := infra.Start(); err != nil {
		return nil, err
	}
	infra.Lifecycle.WaitForStartup()

	if !infra.Database.Ready() {
		infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
		return nil, fmt.Errorf("database unavailable")
	}

	runtime, err := api.NewRuntime(ctx, cfg, infra)
	if err != nil {
		infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
		return nil, err
	}

	return &session{
		infra:   infra,
		runtime: runtime,
		domain:  api.NewDomain(cfg, runtime),
		cfg:     cfg,
	}, nil
}

func (s *session) logger() *slog.Logger {
	return s.infra.Logger
}

// Close drains pending email and shuts the stack down.
func (s *session) Close() error {
	s.runtime.Notifier.Wait()
	return s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
}
