// Package workout owns the in-progress session, the committed history, and
// the Tracker that persists both.
package workout

import (
	"math"
	"time"

	"github.com/claude/musclememo/internal/models"
	"github.com/google/uuid"
)

// SetField names the editable numeric fields of a set.
type SetField string

const (
	FieldWeight SetField = "weight"
	FieldReps   SetField = "reps"
)

// Builder holds at most one in-progress session. It is Idle when current is
// nil and Active otherwise.
//
// Every mutation is a no-op when Idle or when an id does not resolve; the
// returned bool reports whether anything changed. Builder is not safe for
// concurrent use; Tracker serializes access.
type Builder struct {
	current *models.WorkoutSession
	now     func() time.Time
	newID   func() string
}

// NewBuilder returns an Idle builder.
func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now, newID: uuid.NewString}
}

// Active reports whether a session is in progress.
func (b *Builder) Active() bool {
	return b.current != nil
}

// Current returns a copy of the in-progress session, or nil when Idle.
func (b *Builder) Current() *models.WorkoutSession {
	if b.current == nil {
		return nil
	}
	c := b.current.Clone()
	return &c
}

// Restore puts a previously persisted in-progress session back. Passing nil
// leaves the builder Idle.
func (b *Builder) Restore(s *models.WorkoutSession) {
	if s == nil {
		b.current = nil
		return
	}
	c := s.Clone()
	if c.Exercises == nil {
		c.Exercises = []models.WorkoutExercise{}
	}
	b.current = &c
}

// Start creates a new empty session. Calling Start while Active keeps the
// existing session.
func (b *Builder) Start() bool {
	if b.current != nil {
		return false
	}
	b.current = &models.WorkoutSession{
		ID:        b.newID(),
		Date:      b.now(),
		Exercises: []models.WorkoutExercise{},
	}
	return true
}

// AddExercise appends an instance of ex seeded with one default set and
// returns the new instance id.
func (b *Builder) AddExercise(ex models.Exercise) (string, bool) {
	if b.current == nil {
		return "", false
	}
	inst := models.WorkoutExercise{
		ID:         b.newID(),
		ExerciseID: ex.ID,
		Name:       ex.Name,
		Sets: []models.WorkoutSet{{
			ID:     b.newID(),
			Weight: models.DefaultSetWeight,
			Reps:   models.DefaultSetReps,
		}},
	}
	b.current.Exercises = append(b.current.Exercises, inst)
	return inst.ID, true
}

// AddSet appends a set to the instance, copying weight and reps from its last
// set or using the defaults when it has none. Completed always starts false.
func (b *Builder) AddSet(instanceID string) (string, bool) {
	inst := b.instance(instanceID)
	if inst == nil {
		return "", false
	}
	set := models.WorkoutSet{
		ID:     b.newID(),
		Weight: models.DefaultSetWeight,
		Reps:   models.DefaultSetReps,
	}
	if n := len(inst.Sets); n > 0 {
		set.Weight = inst.Sets[n-1].Weight
		set.Reps = inst.Sets[n-1].Reps
	}
	inst.Sets = append(inst.Sets, set)
	return set.ID, true
}

// UpdateSet replaces weight or reps on the matching set. Range checks are the
// caller's concern; reps are truncated toward zero and clamped to int32.
func (b *Builder) UpdateSet(instanceID, setID string, field SetField, value float64) bool {
	set := b.set(instanceID, setID)
	if set == nil {
		return false
	}
	switch field {
	case FieldWeight:
		set.Weight = value
	case FieldReps:
		set.Reps = repsOf(value)
	default:
		return false
	}
	return true
}

// ToggleSetComplete flips the completed flag.
func (b *Builder) ToggleSetComplete(instanceID, setID string) bool {
	set := b.set(instanceID, setID)
	if set == nil {
		return false
	}
	set.Completed = !set.Completed
	return true
}

// RemoveSet deletes one set. An instance may be left with zero sets.
func (b *Builder) RemoveSet(instanceID, setID string) bool {
	inst := b.instance(instanceID)
	if inst == nil {
		return false
	}
	for i, s := range inst.Sets {
		if s.ID == setID {
			inst.Sets = append(inst.Sets[:i], inst.Sets[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveExercise deletes an instance together with its sets.
func (b *Builder) RemoveExercise(instanceID string) bool {
	if b.current == nil {
		return false
	}
	for i, ex := range b.current.Exercises {
		if ex.ID == instanceID {
			b.current.Exercises = append(b.current.Exercises[:i], b.current.Exercises[i+1:]...)
			return true
		}
	}
	return false
}

// Finish re-stamps the session to the current time, attaches feedback, and
// returns it. The builder is Idle afterwards. An empty session is allowed
// here; the at-least-one-exercise rule belongs to the caller.
func (b *Builder) Finish(feedback *string) (models.WorkoutSession, bool) {
	if b.current == nil {
		return models.WorkoutSession{}, false
	}
	done := b.current.Clone()
	b.current = nil
	done.Date = b.now()
	if feedback != nil {
		fb := *feedback
		done.AIFeedback = &fb
	}
	return done, true
}

// Cancel discards the in-progress session without touching history.
func (b *Builder) Cancel() bool {
	if b.current == nil {
		return false
	}
	b.current = nil
	return true
}

func (b *Builder) instance(instanceID string) *models.WorkoutExercise {
	if b.current == nil {
		return nil
	}
	for i := range b.current.Exercises {
		if b.current.Exercises[i].ID == instanceID {
			return &b.current.Exercises[i]
		}
	}
	return nil
}

func (b *Builder) set(instanceID, setID string) *models.WorkoutSet {
	inst := b.instance(instanceID)
	if inst == nil {
		return nil
	}
	for i := range inst.Sets {
		if inst.Sets[i].ID == setID {
			return &inst.Sets[i]
		}
	}
	return nil
}

// repsOf converts a reps value without relying on out-of-range float to int
// conversion, which Go leaves implementation-defined. NaN becomes 0.
func repsOf(value float64) int {
	switch {
	case math.IsNaN(value):
		return 0
	case value >= math.MaxInt32:
		return math.MaxInt32
	case value <= math.MinInt32:
		return math.MinInt32
	}
	return int(value)
}
