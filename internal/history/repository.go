package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/pkg/pagination"
	"github.com/JaimeStill/moodai/pkg/query"
	"github.com/JaimeStill/moodai/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates a history repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "history"),
		pagination: pagination,
		now:        time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Append(ctx context.Context, userID uuid.UUID, label mood.Label, message string) (*Entry, error) {
	if !label.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMood, label)
	}

	q := `
		INSERT INTO mood_history(user_id, mood, message)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, mood, message, recorded_at`

	args := []any{userID, string(label), Excerpt(message)}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		return repository.QueryOne(ctx, tx, q, args, scanEntry)
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("append history: %w", err)
	}

	r.logger.Debug("mood recorded", "user_id", userID, "mood", label)
	return &e, nil
}

func (r *repo) List(ctx context.Context, userID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID).
		WhereSearch(page.Search, "Message")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	items, total, err := repository.QueryPage(ctx, r.db, qb, page.Page, page.PageSize, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Chart(ctx context.Context, userID uuid.UUID, days int) ([]ChartPoint, error) {
	since := r.now().AddDate(0, 0, -ClampDays(days, DefaultChartDays))

	q := `
		SELECT recorded_at, mood
		FROM public.mood_history
		WHERE user_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at ASC`

	points, err := repository.QueryMany(ctx, r.db, q, []any{userID, since}, func(s repository.Scanner) (ChartPoint, error) {
		var at time.Time
		var l mood.Label
		if err := s.Scan(&at, &l); err != nil {
			return ChartPoint{}, err
		}
		return NewChartPoint(at, l), nil
	})
	if err != nil {
		return nil, fmt.Errorf("query chart: %w", err)
	}
	return points, nil
}

func (r *repo) Summary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*Summary, error) {
	q := `
		SELECT mood, COUNT(*)
		FROM public.mood_history
		WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		GROUP BY mood`

	type row struct {
		label mood.Label
		count int
	}

	rows, err := repository.QueryMany(ctx, r.db, q, []any{userID, from, to}, func(s repository.Scanner) (row, error) {
		var rw row
		err := s.Scan(&rw.label, &rw.count)
		return rw, err
	})
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}

	counts := make(map[mood.Label]int, len(rows))
	for _, rw := range rows {
		counts[rw.label] = rw.count
	}

	s := Summarize(from, to, counts)
	return &s, nil
}
