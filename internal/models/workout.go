package models

import "time"

// Default values for a freshly seeded set.
const (
	DefaultSetWeight = 20.0
	DefaultSetReps   = 10
)

// Exercise is a catalog entry. Built-in entries are fixed; custom entries are
// appended by the user and never removed.
type Exercise struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// WorkoutSet is one weight/reps pair within an exercise instance.
type WorkoutSet struct {
	ID        string  `json:"id"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

// Volume returns weight × reps.
func (s WorkoutSet) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// WorkoutExercise is one exercise performed within a session. ID is the
// instance id; ExerciseID references the catalog entry. Name is copied at
// add time.
type WorkoutExercise struct {
	ID         string       `json:"id"`
	ExerciseID string       `json:"exerciseId"`
	Name       string       `json:"name"`
	Sets       []WorkoutSet `json:"sets"`
}

// Volume returns Σ(weight × reps) over all sets.
func (e WorkoutExercise) Volume() float64 {
	var v float64
	for _, s := range e.Sets {
		v += s.Volume()
	}
	return v
}

// MaxWeight returns the heaviest single set, or 0 when there are no sets.
func (e WorkoutExercise) MaxWeight() float64 {
	var best float64
	for i, s := range e.Sets {
		if i == 0 || s.Weight > best {
			best = s.Weight
		}
	}
	return best
}

// WorkoutSession is one workout occasion. While in progress it is owned by the
// builder; once committed to history it is never mutated again.
type WorkoutSession struct {
	ID              string            `json:"id"`
	Date            time.Time         `json:"date"`
	Exercises       []WorkoutExercise `json:"exercises"`
	AIFeedback      *string           `json:"aiFeedback,omitempty"`
	DurationMinutes *float64          `json:"durationMinutes,omitempty"`
}

// Volume returns the total volume across every exercise instance.
func (s WorkoutSession) Volume() float64 {
	var v float64
	for _, ex := range s.Exercises {
		v += ex.Volume()
	}
	return v
}

// SetCount returns the number of sets across every exercise instance.
func (s WorkoutSession) SetCount() int {
	n := 0
	for _, ex := range s.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// Clone returns a deep copy so callers can't alias builder or history state.
func (s WorkoutSession) Clone() WorkoutSession {
	out := s
	if s.Exercises != nil {
		out.Exercises = make([]WorkoutExercise, len(s.Exercises))
		for i, ex := range s.Exercises {
			out.Exercises[i] = ex
			if ex.Sets != nil {
				out.Exercises[i].Sets = append([]WorkoutSet(nil), ex.Sets...)
			}
		}
	}
	if s.AIFeedback != nil {
		fb := *s.AIFeedback
		out.AIFeedback = &fb
	}
	if s.DurationMinutes != nil {
		d := *s.DurationMinutes
		out.DurationMinutes = &d
	}
	return out
}

// CloneSessions deep-copies a slice of sessions.
func CloneSessions(sessions []WorkoutSession) []WorkoutSession {
	out := make([]WorkoutSession, len(sessions))
	for i, s := range sessions {
		out[i] = s.Clone()
	}
	return out
}

// Snapshot is the persisted state slot. CustomExercises is only written when
// custom exercise persistence is enabled.
type Snapshot struct {
	CurrentWorkout  *WorkoutSession  `json:"currentWorkout"`
	IsWorkoutActive bool             `json:"isWorkoutActive"`
	History         []WorkoutSession `json:"history"`
	CustomExercises []Exercise       `json:"customExercises,omitempty"`
}
