package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/claude/musclememo/internal/catalog"
	"github.com/claude/musclememo/internal/models"
	"github.com/claude/musclememo/internal/workout"
)

type memSlot struct{ snap *models.Snapshot }

func (m *memSlot) Load(ctx context.Context) (*models.Snapshot, error) { return m.snap, nil }

func (m *memSlot) Save(ctx context.Context, snap *models.Snapshot) error {
	m.snap = snap
	return nil
}

// TestLocalReadsTracker verifies Local derives its views from tracker history.
func TestLocalReadsTracker(t *testing.T) {
	slot := &memSlot{snap: &models.Snapshot{History: sampleHistory()}}
	tracker, err := workout.New(context.Background(), catalog.New(nil), slot, nil, workout.Options{},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	l := NewLocal(tracker)
	ctx := context.Background()

	sessions, _ := l.SearchHistory(ctx, "")
	if len(sessions) != 2 {
		t.Errorf("history = %d sessions, want 2", len(sessions))
	}
	day, _ := l.Day(ctx, "2026-03-04")
	if len(day.Exercises) != 1 {
		t.Errorf("day = %+v", day)
	}
	rec, _ := l.ExerciseRecord(ctx, "スクワット", 0)
	if rec.Previous == nil || rec.Previous.SessionID != "old" {
		t.Errorf("record = %+v", rec)
	}
	exercises, _ := l.Exercises(ctx)
	if len(exercises) != len(catalog.Builtin) {
		t.Errorf("exercises = %d", len(exercises))
	}
}
