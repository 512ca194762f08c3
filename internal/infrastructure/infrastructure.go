// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (logging, storage, codec, optional database) that
// the conversion and history systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/image-forge/internal/codec"
	"github.com/JaimeStill/image-forge/internal/config"
	"github.com/JaimeStill/image-forge/internal/history"
	"github.com/JaimeStill/image-forge/internal/storage"
	"github.com/JaimeStill/image-forge/pkg/database"
	"github.com/JaimeStill/image-forge/pkg/lifecycle"
	"github.com/JaimeStill/image-forge/pkg/logging"
)

// Infrastructure holds the core systems shared by the CLI and the API.
// Database is nil when batch history is disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Codec     codec.Codec
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging)
	return NewWithLogger(cfg, logger)
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Storage:   storage.New(cfg.Conversion.SafeReplace, logger),
		Codec:     codec.NewImaging(),
	}

	if cfg.Database.Enabled {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	return infra, nil
}

// HistoryEnabled reports whether a database backs batch history.
func (i *Infrastructure) HistoryEnabled() bool {
	return i.Database != nil
}

// Start connects the database, applies the history schema, and registers
// shutdown hooks with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database == nil {
		return nil
	}
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Database.Migrate(history.Migrations, history.MigrationsDir); err != nil {
		return fmt.Errorf("database migrate failed: %w", err)
	}
	return nil
}
