package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/claude/musclememo/internal/config"
)

// TestOpenSQLiteDriver verifies the sqlite driver yields a working slot.
func TestOpenSQLiteDriver(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	slot, err := Open(context.Background(), config.StorageConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "state.db"),
	}, log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer slot.Close()

	if _, ok := slot.(*SQLite); !ok {
		t.Errorf("slot = %T, want *SQLite", slot)
	}
	if err := slot.Save(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

// TestOpenUnknownDriver verifies an unknown driver is rejected.
func TestOpenUnknownDriver(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := Open(context.Background(), config.StorageConfig{Driver: "mysql"}, log); err == nil {
		t.Error("expected error for unknown driver")
	}
}
