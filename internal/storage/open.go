package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/musclememo/internal/config"
)

// Open returns the slot selected by cfg.Driver. PostgreSQL migrations are
// applied before the pool is created.
func Open(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Slot, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := cfg.Database.DSN()
		if err := RunMigrations(dsn); err != nil {
			return nil, err
		}
		log.Info("migrations applied")
		db, err := New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		log.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.Name)
		return db, nil
	case config.DriverSQLite:
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		log.Info("opened sqlite", "path", cfg.Path)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
