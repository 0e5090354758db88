// Package database owns the PostgreSQL pool behind the pgx stdlib driver.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/moodai/pkg/lifecycle"
)

// System is the shared pool plus its readiness flag. Repositories take the
// *sql.DB from Connection; the readiness endpoint reads Ready.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
	Ready() bool
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	target      string
	connTimeout time.Duration
	ready       atomic.Bool
}

// New opens the pool without dialing. The first connection attempt happens in
// the startup hook registered by Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:        db,
		logger:      logger.With("system", "database"),
		target:      fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Name),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Ready() bool {
	return d.ready.Load()
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.connTimeout)
		defer cancel()

		if err := d.conn.PingContext(ctx); err != nil {
			d.logger.Error("ping failed, readiness stays down", "target", d.target, "error", err)
			return
		}
		d.ready.Store(true)
		d.logger.Info("connected", "target", d.target)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.ready.Store(false)

		stats := d.conn.Stats()
		if err := d.conn.Close(); err != nil {
			d.logger.Error("close failed", "error", err)
			return
		}
		d.logger.Info("pool closed", "opened", stats.OpenConnections, "waits", stats.WaitCount)
	})

	return nil
}
