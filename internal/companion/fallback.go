package companion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Fallback tries a primary composer and answers with a canned reply when it fails.
type Fallback struct {
	primary Composer
	canned  *Canned
	logger  *slog.Logger
}

// NewFallback wraps primary with canned.
func NewFallback(primary Composer, canned *Canned, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fallback{
		primary: primary,
		canned:  canned,
		logger:  logger.With("system", "companion"),
	}
}

// Compose implements Composer. It only fails when the caller has canceled ctx.
func (f *Fallback) Compose(ctx context.Context, req Request) (Reply, error) {
	reply, err := f.primary.Compose(ctx, req)
	if err == nil {
		return reply, nil
	}

	f.logger.WarnContext(ctx, "composer failed, using canned reply", "mood", req.Label, "error", err)

	if errors.Is(ctx.Err(), context.Canceled) {
		return Reply{}, ctx.Err()
	}
	return f.canned.Compose(ctx, req)
}

// New builds the composer selected by cfg. Model-backed providers are wrapped
// in a Fallback over the canned composer.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Composer, error) {
	var chooser Chooser
	if cfg.Seed != 0 {
		chooser = NewChooser(cfg.Seed)
	}
	canned := NewCanned(chooser)

	switch cfg.Provider {
	case "", ProviderCanned:
		return canned, nil
	case ProviderOpenAI:
		return NewFallback(NewOpenAI(cfg), canned, logger), nil
	case ProviderGemini:
		g, err := NewGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewFallback(g, canned, logger), nil
	}
	return nil, fmt.Errorf("unknown companion provider: %s", cfg.Provider)
}
