package recommendations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/moodai/internal/mood"
	"github.com/JaimeStill/moodai/pkg/cache"
	"github.com/JaimeStill/moodai/pkg/pagination"
	"github.com/JaimeStill/moodai/pkg/query"
	"github.com/JaimeStill/moodai/pkg/repository"
)

// moodCacheSize bounds how many rows per mood are cached. ForMood slices from it.
const moodCacheSize = 50

const returning = `RETURNING id, type, content, description, mood_tags, duration, difficulty, link, created_at`

type repo struct {
	db         *sql.DB
	cache      cache.System
	logger     *slog.Logger
	pagination pagination.Config
	maxBody    int64
}

// New creates a recommendation repository implementing the System interface.
func New(
	db *sql.DB,
	cache cache.System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBody int64,
) System {
	return &repo{
		db:         db,
		cache:      cache,
		logger:     logger.With("system", "recommendations"),
		pagination: pagination,
		maxBody:    maxBody,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.maxBody)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Recommendation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Content", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	items, total, err := repository.QueryPage(ctx, r.db, qb, page.Page, page.PageSize, scanRecommendation)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ForMood(ctx context.Context, label mood.Label, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		return []Recommendation{}, nil
	}

	items, err := r.moodSet(ctx, label)
	if err != nil {
		return nil, err
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *repo) moodSet(ctx context.Context, label mood.Label) ([]Recommendation, error) {
	key := moodKey(label)

	if raw, ok, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		var items []Recommendation
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		r.logger.Warn("discarding malformed cache entry", "key", key)
	}

	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereAny("MoodTags", string(label)).
		BuildPage(1, moodCacheSize)

	items, err := repository.QueryMany(ctx, r.db, q, args, scanRecommendation)
	if err != nil {
		return nil, fmt.Errorf("query recommendations for %s: %w", label, err)
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := r.cache.Set(ctx, key, raw, 0); err != nil {
			r.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return items, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Recommendation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecommendation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rec, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Recommendation, error) {
	tags, err := cmd.Normalize()
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO recommendations(type, content, description, mood_tags, duration, difficulty, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		` + returning

	rec, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Recommendation, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs(cmd, tags), scanRecommendation)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.invalidate(ctx)
	r.logger.Info("recommendation created", "id", rec.ID, "type", rec.Type)
	return &rec, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM recommendations WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.invalidate(ctx)
	r.logger.Info("recommendation deleted", "id", id)
	return nil
}

func (r *repo) Seed(ctx context.Context, cmds []CreateCommand) (int, error) {
	q := `
		INSERT INTO recommendations(type, content, description, mood_tags, duration, difficulty, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (content) DO UPDATE SET
			type = EXCLUDED.type,
			description = EXCLUDED.description,
			mood_tags = EXCLUDED.mood_tags,
			duration = EXCLUDED.duration,
			difficulty = EXCLUDED.difficulty,
			link = EXCLUDED.link`

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		for i := range cmds {
			tags, err := cmds[i].Normalize()
			if err != nil {
				return 0, fmt.Errorf("seed entry %d: %w", i, err)
			}
			if _, err := tx.ExecContext(ctx, q, insertArgs(cmds[i], tags)...); err != nil {
				return 0, fmt.Errorf("seed entry %d: %w", i, err)
			}
		}
		return len(cmds), nil
	})
	if err != nil {
		return 0, err
	}

	r.invalidate(ctx)
	r.logger.Info("recommendations seeded", "count", n)
	return n, nil
}

func (r *repo) invalidate(ctx context.Context) {
	keys := make([]string, 0, len(mood.Labels()))
	for _, l := range mood.Labels() {
		keys = append(keys, moodKey(l))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("cache invalidation failed", "error", err)
	}
}

func insertArgs(cmd CreateCommand, tags []mood.Label) []any {
	return []any{
		string(cmd.Type),
		cmd.Content,
		cmd.Description,
		tagStrings(tags),
		cmd.Duration,
		string(cmd.Difficulty),
		cmd.Link,
	}
}

func moodKey(l mood.Label) string {
	return "recommendations:mood:" + strings.ReplaceAll(strings.ToLower(string(l)), " ", "_")
}
