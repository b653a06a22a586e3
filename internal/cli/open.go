package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/claude/musclememo/internal/catalog"
	"github.com/claude/musclememo/internal/config"
	"github.com/claude/musclememo/internal/storage"
	"github.com/claude/musclememo/internal/workout"
)

// OpenFromConfig returns an Opener that loads the config file and the
// storage slot it names. The CLI never finishes workouts, so no feedback
// gateway is wired.
func OpenFromConfig(log *slog.Logger) Opener {
	return func(ctx context.Context, configPath string) (*workout.Tracker, io.Closer, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		slot, err := storage.Open(ctx, cfg.Storage, log)
		if err != nil {
			return nil, nil, err
		}
		tracker, err := workout.New(ctx, catalog.New(nil), slot, nil, workout.Options{
			PersistCustom: cfg.Catalog.PersistCustom,
		}, log)
		if err != nil {
			slot.Close()
			return nil, nil, err
		}
		return tracker, slot, nil
	}
}
