// Package infrastructure provides core service initialization for application startup.
// It assembles the shared systems (lifecycle, logging, metrics, storage, and the
// optional database) that the quickstart views depend on.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/uploads"
	"github.com/JaimeStill/web-quickstart/pkg/database"
	"github.com/JaimeStill/web-quickstart/pkg/lifecycle"
	"github.com/JaimeStill/web-quickstart/pkg/logging"
	"github.com/JaimeStill/web-quickstart/pkg/metrics"
	"github.com/JaimeStill/web-quickstart/pkg/storage"
)

// MetricsNamespace prefixes every exported Prometheus metric.
const MetricsNamespace = "quickstart"

// Infrastructure holds the core systems required by all domain modules.
// Database is nil when the database is disabled in configuration.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, logging.New(&cfg.Logging))
}

// NewWithLogger is New with an explicit logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	lc := lifecycle.New()

	var db database.System
	if cfg.Database.Enabled {
		var err error
		db, err = database.New(&cfg.Database, logger, uploads.Migrations())
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Metrics:   metrics.New(MetricsNamespace),
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers every infrastructure system with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
