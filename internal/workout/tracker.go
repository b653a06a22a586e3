package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/claude/musclememo/internal/catalog"
	"github.com/claude/musclememo/internal/models"
)

var (
	ErrNoActiveWorkout   = errors.New("no active workout")
	ErrNoExercises       = errors.New("add at least one exercise before finishing")
	ErrFinishInProgress  = errors.New("workout is already being finished")
	ErrSessionNotFound   = errors.New("session not found")
	ErrBlankExerciseName = errors.New("exercise name is required")
)

// Persister is the durable state slot: load once at startup, save the whole
// snapshot after every change.
type Persister interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

// FeedbackGateway produces coaching text for a finished session. It must
// always return some text and never fail.
type FeedbackGateway interface {
	RequestFeedback(ctx context.Context, session models.WorkoutSession, history []models.WorkoutSession) string
}

// Options tune a Tracker.
type Options struct {
	// PersistCustom includes custom catalog entries in the saved snapshot.
	PersistCustom bool
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
	// OnCommit is called with each session appended to history by Finish
	// and the new history length. It runs under the tracker lock and must
	// not call back into the Tracker.
	OnCommit func(session models.WorkoutSession, historyLen int)
	// OnHistoryChange is called with the new history length whenever a
	// commit, delete or import changed history. Same locking rules as
	// OnCommit.
	OnHistoryChange func(historyLen int)
}

// Tracker is the single owned state object: catalog, builder and history,
// written through to a Persister on every change. Safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	catalog   *catalog.Catalog
	builder   *Builder
	history   *History
	store     Persister
	gateway   FeedbackGateway
	opts      Options
	finishing bool
	log       *slog.Logger
}

// New loads the persisted snapshot and returns a ready Tracker.
func New(ctx context.Context, cat *catalog.Catalog, store Persister, gateway FeedbackGateway, opts Options, log *slog.Logger) (*Tracker, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if snap == nil {
		snap = &models.Snapshot{}
	}

	t := &Tracker{
		catalog: cat,
		builder: NewBuilder(opts.Now),
		history: NewHistory(snap.History),
		store:   store,
		gateway: gateway,
		opts:    opts,
		log:     log,
	}
	if snap.IsWorkoutActive {
		t.builder.Restore(snap.CurrentWorkout)
	}
	if opts.PersistCustom && len(snap.CustomExercises) > 0 {
		cat.Restore(snap.CustomExercises)
	}

	log.Info("state loaded",
		"sessions", t.history.Len(),
		"workout_active", t.builder.Active(),
		"custom_exercises", len(cat.Custom()),
	)
	return t, nil
}

// Exercises lists the catalog, built-ins first.
func (t *Tracker) Exercises() []models.Exercise {
	return t.catalog.List()
}

// ExercisesIn lists the catalog entries in one body-part bucket.
func (t *Tracker) ExercisesIn(bucket models.BodyPartCategory) []models.Exercise {
	return t.catalog.ByCategory(bucket)
}

// FindExercise resolves a catalog id.
func (t *Tracker) FindExercise(id string) (models.Exercise, bool) {
	return t.catalog.Find(id)
}

// AddCustomExercise appends a custom catalog entry. The name is trimmed.
func (t *Tracker) AddCustomExercise(ctx context.Context, name, category string) (models.Exercise, error) {
	name = strings.TrimSpace(name)
	t.mu.Lock()
	defer t.mu.Unlock()

	ex, ok := t.catalog.AddCustom(name, category)
	if !ok {
		return models.Exercise{}, ErrBlankExerciseName
	}
	if t.opts.PersistCustom {
		if err := t.saveLocked(ctx); err != nil {
			return ex, err
		}
	}
	return ex, nil
}

// Active reports whether a workout is in progress.
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.builder.Active()
}

// Current returns a copy of the in-progress session, or nil.
func (t *Tracker) Current() *models.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.builder.Current()
}

// History returns committed sessions, newest first.
func (t *Tracker) History() []models.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.Sessions()
}

// Session returns one committed session.
func (t *Tracker) Session(id string) (models.WorkoutSession, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.Get(id)
}

// Start begins a new workout. It reports false if one is already running.
func (t *Tracker) Start(ctx context.Context) (bool, error) {
	return t.mutate(ctx, func(b *Builder) bool { return b.Start() })
}

// AddExercise appends an instance of ex and returns its instance id, or ""
// when no workout is active.
func (t *Tracker) AddExercise(ctx context.Context, ex models.Exercise) (string, error) {
	var id string
	_, err := t.mutate(ctx, func(b *Builder) bool {
		var ok bool
		id, ok = b.AddExercise(ex)
		return ok
	})
	return id, err
}

// AddSet appends a set and returns its id, or "" when nothing matched.
func (t *Tracker) AddSet(ctx context.Context, instanceID string) (string, error) {
	var id string
	_, err := t.mutate(ctx, func(b *Builder) bool {
		var ok bool
		id, ok = b.AddSet(instanceID)
		return ok
	})
	return id, err
}

// UpdateSet changes weight or reps on one set.
func (t *Tracker) UpdateSet(ctx context.Context, instanceID, setID string, field SetField, value float64) (bool, error) {
	return t.mutate(ctx, func(b *Builder) bool { return b.UpdateSet(instanceID, setID, field, value) })
}

// ToggleSetComplete flips the completed flag on one set.
func (t *Tracker) ToggleSetComplete(ctx context.Context, instanceID, setID string) (bool, error) {
	return t.mutate(ctx, func(b *Builder) bool { return b.ToggleSetComplete(instanceID, setID) })
}

// RemoveSet deletes one set.
func (t *Tracker) RemoveSet(ctx context.Context, instanceID, setID string) (bool, error) {
	return t.mutate(ctx, func(b *Builder) bool { return b.RemoveSet(instanceID, setID) })
}

// RemoveExercise deletes one exercise instance.
func (t *Tracker) RemoveExercise(ctx context.Context, instanceID string) (bool, error) {
	return t.mutate(ctx, func(b *Builder) bool { return b.RemoveExercise(instanceID) })
}

// Cancel discards the in-progress workout. Idempotent.
func (t *Tracker) Cancel(ctx context.Context) (bool, error) {
	return t.mutate(ctx, func(b *Builder) bool { return b.Cancel() })
}

// Finish obtains coaching text for the in-progress workout and commits it to
// history. The gateway runs outside the lock; only one Finish may be in
// flight. If the workout is cancelled while feedback is pending nothing is
// committed and ErrNoActiveWorkout is returned.
//
// Cancellation of ctx is ignored: once started, a finish always reaches the
// store. The gateway bounds its own wait.
func (t *Tracker) Finish(ctx context.Context) (models.WorkoutSession, error) {
	ctx = context.WithoutCancel(ctx)
	t.mu.Lock()
	cur := t.builder.Current()
	switch {
	case cur == nil:
		t.mu.Unlock()
		return models.WorkoutSession{}, ErrNoActiveWorkout
	case len(cur.Exercises) == 0:
		t.mu.Unlock()
		return models.WorkoutSession{}, ErrNoExercises
	case t.finishing:
		t.mu.Unlock()
		return models.WorkoutSession{}, ErrFinishInProgress
	}
	t.finishing = true
	prior := t.history.Sessions()
	t.mu.Unlock()

	var feedback *string
	if t.gateway != nil {
		text := t.gateway.RequestFeedback(ctx, *cur, prior)
		feedback = &text
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.finishing = false

	if now := t.builder.Current(); now == nil || now.ID != cur.ID {
		t.log.Warn("workout cancelled while awaiting feedback", "session_id", cur.ID)
		return models.WorkoutSession{}, ErrNoActiveWorkout
	}

	session, _ := t.builder.Finish(feedback)
	t.history.Prepend(session)
	if err := t.saveLocked(ctx); err != nil {
		return session, err
	}

	t.log.Info("workout committed",
		"session_id", session.ID,
		"exercises", len(session.Exercises),
		"sets", session.SetCount(),
		"volume", session.Volume(),
	)
	if t.opts.OnCommit != nil {
		t.opts.OnCommit(session, t.history.Len())
	}
	t.historyChanged()
	return session.Clone(), nil
}

// DeleteSession removes a committed session.
func (t *Tracker) DeleteSession(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.history.Delete(id) {
		return ErrSessionNotFound
	}
	if err := t.saveLocked(ctx); err != nil {
		return err
	}
	t.historyChanged()
	return nil
}

// Import merges externally recorded sessions into history and returns how
// many were added.
func (t *Tracker) Import(ctx context.Context, sessions []models.WorkoutSession) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	added := t.history.Merge(sessions)
	if added == 0 {
		return 0, nil
	}
	if err := t.saveLocked(ctx); err != nil {
		return 0, err
	}
	t.historyChanged()
	return added, nil
}

// Snapshot returns the state exactly as it would be persisted.
func (t *Tracker) Snapshot() *models.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) mutate(ctx context.Context, fn func(*Builder) bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !fn(t.builder) {
		return false, nil
	}
	if err := t.saveLocked(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (t *Tracker) historyChanged() {
	if t.opts.OnHistoryChange != nil {
		t.opts.OnHistoryChange(t.history.Len())
	}
}

func (t *Tracker) snapshotLocked() *models.Snapshot {
	snap := &models.Snapshot{
		CurrentWorkout:  t.builder.Current(),
		IsWorkoutActive: t.builder.Active(),
		History:         t.history.Sessions(),
	}
	if t.opts.PersistCustom {
		snap.CustomExercises = t.catalog.Custom()
	}
	return snap
}

func (t *Tracker) saveLocked(ctx context.Context) error {
	if err := t.store.Save(ctx, t.snapshotLocked()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
