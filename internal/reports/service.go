package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/moodai/internal/users"
	"github.com/JaimeStill/moodai/pkg/lifecycle"
	"github.com/JaimeStill/moodai/pkg/storage"
)

// Deps are the collaborators a report service draws on.
type Deps struct {
	History  Summaries
	Users    Accounts
	Notifier WeeklyNotifier
	Storage  storage.System
}

type service struct {
	deps   Deps
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a report service implementing the System interface. A nil
// Storage disables archiving.
func New(deps Deps, cfg Config, logger *slog.Logger) System {
	if deps.Storage == nil {
		deps.Storage = storage.Disabled()
	}
	return &service{
		deps:   deps,
		cfg:    cfg,
		logger: logger.With("system", "reports"),
		now:    time.Now,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Start(lc *lifecycle.Coordinator) error {
	if !s.cfg.Enabled {
		return nil
	}

	interval := s.cfg.IntervalDuration()
	s.logger.Info("weekly reports scheduled", "interval", interval)

	lc.Every(interval, func(ctx context.Context) {
		if _, err := s.RunAll(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("weekly report run failed", "error", err)
		}
	})

	return nil
}

func (s *service) Generate(ctx context.Context, userID uuid.UUID) (*Report, error) {
	u, err := s.deps.Users.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.generate(ctx, *u)
}

func (s *service) generate(ctx context.Context, u users.User) (*Report, error) {
	to := s.now()
	from := to.AddDate(0, 0, -WindowDays)

	summary, err := s.deps.History.Summary(ctx, u.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize history: %w", err)
	}

	return &Report{
		UserID:      u.ID,
		Username:    u.Username,
		Summary:     *summary,
		GeneratedAt: to.UTC(),
	}, nil
}

func (s *service) Send(ctx context.Context, userID uuid.UUID) (*Report, error) {
	u, err := s.deps.Users.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.send(ctx, *u)
}

func (s *service) send(ctx context.Context, u users.User) (*Report, error) {
	r, err := s.generate(ctx, u)
	if err != nil {
		return nil, err
	}

	s.deps.Notifier.WeeklyReport(u.Email, r.EmailData())

	if err := s.archive(ctx, r); err != nil {
		s.logger.Warn("report archive failed", "user_id", u.ID, "error", err)
	}

	return r, nil
}

func (s *service) archive(ctx context.Context, r *Report) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	key := ArchiveKey(r.UserID, r.GeneratedAt)
	err = s.deps.Storage.Upload(ctx, key, bytes.NewReader(raw), "application/json")
	if errors.Is(err, storage.ErrDisabled) {
		return nil
	}
	return err
}

func (s *service) RunAll(ctx context.Context) (RunResult, error) {
	all, err := s.deps.Users.All(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("list users: %w", err)
	}

	var sent, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.Concurrency, 1))

	for _, u := range all {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := s.send(gctx, u); err != nil {
				failed.Add(1)
				s.logger.Error("weekly report failed", "user_id", u.ID, "error", err)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}

	err = g.Wait()

	result := RunResult{
		Users:  len(all),
		Sent:   int(sent.Load()),
		Failed: int(failed.Load()),
	}
	s.logger.Info("weekly reports sent", "users", result.Users, "sent", result.Sent, "failed", result.Failed)

	return result, err
}

func (s *service) Archived(ctx context.Context, userID uuid.UUID, date string) (*Report, error) {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	blob, err := s.deps.Storage.Download(ctx, ArchiveKey(userID, day))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotArchived
		}
		return nil, fmt.Errorf("download archived report: %w", err)
	}
	defer blob.Body.Close()

	var r Report
	if err := json.NewDecoder(blob.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode archived report: %w", err)
	}
	return &r, nil
}
