// Package ingest holds what import providers share.
package ingest

import (
	"context"

	"github.com/claude/musclememo/internal/models"
)

// Sink receives parsed sessions and reports how many were new.
type Sink interface {
	Import(ctx context.Context, sessions []models.WorkoutSession) (int, error)
}

// Result holds the outcome of an import.
type Result struct {
	SessionsReceived int `json:"sessions_received"`
	SessionsAdded    int `json:"sessions_added"`
	SessionsSkipped  int `json:"sessions_skipped"`
	ExercisesParsed  int `json:"exercises_parsed"`
	SetsParsed       int `json:"sets_parsed"`

	Message string `json:"message,omitempty"`
}
