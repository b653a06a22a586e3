package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/musclememo/internal/ingest"
	"github.com/claude/musclememo/internal/models"
)

// idSpace namespaces the deterministic ids of imported entities so the same
// export always maps to the same session ids.
var idSpace = uuid.MustParse("8f1c5a0e-6f5d-4b8e-9a57-3c1d2e4f6a7b")

// Provider imports Alpha Progression CSV exports into a Sink.
type Provider struct {
	sink ingest.Sink
	loc  *time.Location
	log  *slog.Logger
}

// NewProvider creates a provider that interprets export times in loc.
func NewProvider(sink ingest.Sink, loc *time.Location, log *slog.Logger) *Provider {
	return &Provider{sink: sink, loc: loc, log: log}
}

// Ingest parses r and merges the sessions into history. Sessions already
// imported are skipped.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	parsed, err := Parse(r, p.loc)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	sessions := ToWorkoutSessions(parsed)
	result := &ingest.Result{SessionsReceived: len(sessions)}
	for _, s := range sessions {
		result.ExercisesParsed += len(s.Exercises)
		result.SetsParsed += s.SetCount()
	}
	if len(sessions) == 0 {
		result.Message = "no sessions found"
		return result, nil
	}

	added, err := p.sink.Import(ctx, sessions)
	if err != nil {
		return nil, fmt.Errorf("importing sessions: %w", err)
	}
	result.SessionsAdded = added
	result.SessionsSkipped = len(sessions) - added

	p.log.Info("alpha import complete",
		"sessions", result.SessionsReceived,
		"added", result.SessionsAdded,
		"sets", result.SetsParsed,
	)
	return result, nil
}

// ToWorkoutSessions converts parsed sessions. Warm-ups come first within each
// exercise and every set is marked completed, since the export only holds
// performed sets.
func ToWorkoutSessions(parsed []Session) []models.WorkoutSession {
	out := make([]models.WorkoutSession, 0, len(parsed))
	for _, s := range parsed {
		sid := uuid.NewSHA1(idSpace, []byte(s.Date.UTC().Format(time.RFC3339)+"|"+s.Name))
		ws := models.WorkoutSession{
			ID:        sid.String(),
			Date:      s.Date,
			Exercises: make([]models.WorkoutExercise, 0, len(s.Exercises)),
		}
		if mins, ok := parseDurationMinutes(s.Duration); ok {
			ws.DurationMinutes = &mins
		}
		for i, ex := range s.Exercises {
			iid := uuid.NewSHA1(sid, []byte("exercise|"+strconv.Itoa(i)))
			we := models.WorkoutExercise{
				ID:         iid.String(),
				ExerciseID: exerciseID(ex.Name),
				Name:       ex.Name,
				Sets:       make([]models.WorkoutSet, 0, len(ex.Sets)),
			}
			for j, set := range ex.Sets {
				we.Sets = append(we.Sets, models.WorkoutSet{
					ID:        uuid.NewSHA1(iid, []byte("set|"+strconv.Itoa(j))).String(),
					Weight:    set.Weight,
					Reps:      set.Reps,
					Completed: true,
				})
			}
			ws.Exercises = append(ws.Exercises, we)
		}
		out = append(out, ws)
	}
	return out
}

// exerciseID derives a stable catalog-style id: "Hack Squats" -> "alpha_hack_squats".
func exerciseID(name string) string {
	return "alpha_" + strings.Join(strings.Fields(strings.ToLower(name)), "_")
}
