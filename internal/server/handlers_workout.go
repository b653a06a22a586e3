package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/musclememo/internal/models"
	"github.com/claude/musclememo/internal/workout"
	"github.com/go-chi/chi/v5"
)

// WorkoutState is the response of the builder endpoints.
type WorkoutState struct {
	Active  bool                   `json:"active"`
	Workout *models.WorkoutSession `json:"workout"`
	// CreatedID is the instance or set id added by the request, if any.
	CreatedID string `json:"created_id,omitempty"`
}

func (s *Server) state(created string) WorkoutState {
	cur := s.tracker.Current()
	return WorkoutState{Active: cur != nil, Workout: cur, CreatedID: created}
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state(""))
}

func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	started, err := s.tracker.Start(r.Context())
	if !s.applied(w, started, err, "workout already in progress") {
		return
	}
	writeJSON(w, http.StatusCreated, s.state(""))
}

func (s *Server) handleCancelWorkout(w http.ResponseWriter, r *http.Request) {
	if _, err := s.tracker.Cancel(r.Context()); err != nil {
		s.log.Error("cancel failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.state(""))
}

func (s *Server) handleFinishWorkout(w http.ResponseWriter, r *http.Request) {
	session, err := s.tracker.Finish(r.Context())
	switch {
	case errors.Is(err, workout.ErrNoActiveWorkout), errors.Is(err, workout.ErrFinishInProgress):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	case errors.Is(err, workout.ErrNoExercises):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	case err != nil:
		s.log.Error("finish failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

type addInstanceRequest struct {
	ExerciseID string `json:"exerciseId"`
}

func (s *Server) handleAddInstance(w http.ResponseWriter, r *http.Request) {
	var req addInstanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	ex, ok := s.tracker.FindExercise(req.ExerciseID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown exercise " + req.ExerciseID})
		return
	}
	id, err := s.tracker.AddExercise(r.Context(), ex)
	if !s.applied(w, id != "", err, "") {
		return
	}
	writeJSON(w, http.StatusCreated, s.state(id))
}

func (s *Server) handleRemoveInstance(w http.ResponseWriter, r *http.Request) {
	ok, err := s.tracker.RemoveExercise(r.Context(), chi.URLParam(r, "instanceID"))
	if !s.applied(w, ok, err, "") {
		return
	}
	writeJSON(w, http.StatusOK, s.state(""))
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	id, err := s.tracker.AddSet(r.Context(), chi.URLParam(r, "instanceID"))
	if !s.applied(w, id != "", err, "") {
		return
	}
	writeJSON(w, http.StatusCreated, s.state(id))
}

type updateSetRequest struct {
	Field workout.SetField `json:"field"`
	Value *float64         `json:"value"`
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var req updateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Field != workout.FieldWeight && req.Field != workout.FieldReps {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": `field must be "weight" or "reps"`})
		return
	}
	if req.Value == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "value is required"})
		return
	}
	if s.limits != nil {
		if err := s.limits.Validate(req.Field, *req.Value); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}
	ok, err := s.tracker.UpdateSet(r.Context(), chi.URLParam(r, "instanceID"), chi.URLParam(r, "setID"), req.Field, *req.Value)
	if !s.applied(w, ok, err, "") {
		return
	}
	writeJSON(w, http.StatusOK, s.state(""))
}

func (s *Server) handleToggleSet(w http.ResponseWriter, r *http.Request) {
	ok, err := s.tracker.ToggleSetComplete(r.Context(), chi.URLParam(r, "instanceID"), chi.URLParam(r, "setID"))
	if !s.applied(w, ok, err, "") {
		return
	}
	writeJSON(w, http.StatusOK, s.state(""))
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	ok, err := s.tracker.RemoveSet(r.Context(), chi.URLParam(r, "instanceID"), chi.URLParam(r, "setID"))
	if !s.applied(w, ok, err, "") {
		return
	}
	writeJSON(w, http.StatusOK, s.state(""))
}

// applied writes the error response for a builder mutation that failed to
// save or did not change anything. A no-op while Idle is a conflict; a no-op
// during a workout means an id did not match, unless conflict names a
// different reason. It reports whether the caller should continue.
func (s *Server) applied(w http.ResponseWriter, changed bool, err error, conflict string) bool {
	if err != nil {
		s.log.Error("saving workout state failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return false
	}
	if changed {
		return true
	}
	switch {
	case conflict != "":
		writeJSON(w, http.StatusConflict, map[string]string{"error": conflict})
	case !s.tracker.Active():
		writeJSON(w, http.StatusConflict, map[string]string{"error": workout.ErrNoActiveWorkout.Error()})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise or set not found"})
	}
	return false
}
