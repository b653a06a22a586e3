package mcp

import (
	"context"
	"time"

	"github.com/claude/musclememo/internal/derive"
	"github.com/claude/musclememo/internal/models"
	"github.com/claude/musclememo/internal/workout"
)

// DataSource abstracts the data layer for MCP tools. Both Local (in-process
// tracker) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Stats(ctx context.Context) (derive.Stats, error)
	SearchHistory(ctx context.Context, term string) ([]models.WorkoutSession, error)
	Calendar(ctx context.Context, month time.Time) (derive.CalendarMonth, error)
	Day(ctx context.Context, date string) (derive.DaySummary, error)
	ExerciseRecord(ctx context.Context, exercise string, limit int) (derive.ExerciseRecord, error)
	Exercises(ctx context.Context) ([]models.Exercise, error)
}

// Local serves MCP queries from a tracker in the same process.
type Local struct {
	tracker *workout.Tracker
	now     func() time.Time
}

// Compile-time check: *Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal wraps tracker.
func NewLocal(tracker *workout.Tracker) *Local {
	return &Local{tracker: tracker, now: time.Now}
}

func (l *Local) Stats(ctx context.Context) (derive.Stats, error) {
	return derive.ComputeStats(l.tracker.History(), l.now()), nil
}

func (l *Local) SearchHistory(ctx context.Context, term string) ([]models.WorkoutSession, error) {
	return derive.Search(l.tracker.History(), term), nil
}

func (l *Local) Calendar(ctx context.Context, month time.Time) (derive.CalendarMonth, error) {
	return derive.Month(l.tracker.History(), month), nil
}

func (l *Local) Day(ctx context.Context, date string) (derive.DaySummary, error) {
	return derive.Day(l.tracker.History(), date), nil
}

func (l *Local) ExerciseRecord(ctx context.Context, exercise string, limit int) (derive.ExerciseRecord, error) {
	return derive.RecordFor(exercise, l.tracker.History(), limit), nil
}

func (l *Local) Exercises(ctx context.Context) ([]models.Exercise, error) {
	return l.tracker.Exercises(), nil
}
