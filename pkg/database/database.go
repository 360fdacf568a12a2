// Package database manages the PostgreSQL connection pool and applies
// embedded schema migrations once the connection is verified.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync/atomic"

	"github.com/JaimeStill/web-quickstart/pkg/lifecycle"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// System exposes a database connection bound to the service lifecycle.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
	Ready() bool
}

// Source locates a directory of golang-migrate migration files.
type Source struct {
	FS  fs.FS
	Dir string
}

type database struct {
	conn       *sql.DB
	cfg        *Config
	migrations []Source
	logger     *slog.Logger
	ready      atomic.Bool
}

// New opens a connection pool for cfg. No connection is attempted until
// Start; migrations are applied in order after the first successful ping.
func New(cfg *Config, logger *slog.Logger, migrations ...Source) (System, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:       conn,
		cfg:        cfg,
		migrations: migrations,
		logger:     logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Ready() bool {
	return d.ready.Load()
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database system", "host", d.cfg.Host, "name", d.cfg.Name)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := d.conn.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		for _, src := range d.migrations {
			if err := Migrate(d.cfg.Dsn(), src); err != nil {
				d.logger.Error("database migration failed", "dir", src.Dir, "error", err)
				return
			}
		}

		d.ready.Store(true)
		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.ready.Store(false)
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}
