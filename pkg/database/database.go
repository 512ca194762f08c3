package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/JaimeStill/image-forge/pkg/lifecycle"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// System owns the connection pool for the configured database.
type System interface {
	// Connection returns the underlying pool.
	Connection() *sql.DB

	// Migrate applies every pending up migration found in dir of fsys.
	Migrate(fsys fs.FS, dir string) error

	// Start verifies connectivity and registers pool shutdown with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn   *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens a pgx-backed pool. The pool is lazy; connectivity is checked in Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database system", "host", d.cfg.Host, "name", d.cfg.Name)

	ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}

func (d *database) Migrate(fsys fs.FS, dir string) error {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(d.conn, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, d.cfg.Name, driver)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		d.logger.Info("database migrated", "version", version, "dirty", dirty)
	}

	return nil
}
