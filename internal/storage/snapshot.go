// Package storage provides the durable slot that holds the tracker snapshot:
// SQLite for single-machine use and PostgreSQL for a shared server.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/musclememo/internal/models"
)

// StateKey names the row holding the snapshot.
const StateKey = "workout-storage"

// Slot is a durable snapshot store.
type Slot interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
	Close() error
}

var (
	_ Slot = (*SQLite)(nil)
	_ Slot = (*DB)(nil)
)

func emptySnapshot() *models.Snapshot {
	return &models.Snapshot{History: []models.WorkoutSession{}}
}

func decodeSnapshot(data []byte) (*models.Snapshot, error) {
	snap := emptySnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.History == nil {
		snap.History = []models.WorkoutSession{}
	}
	return snap, nil
}
