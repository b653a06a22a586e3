package alpha

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/claude/musclememo/internal/models"
)

type fakeSink struct {
	seen map[string]bool
	got  []models.WorkoutSession
}

func (f *fakeSink) Import(ctx context.Context, sessions []models.WorkoutSession) (int, error) {
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	added := 0
	for _, s := range sessions {
		if f.seen[s.ID] {
			continue
		}
		f.seen[s.ID] = true
		f.got = append(f.got, s)
		added++
	}
	return added, nil
}

// TestToWorkoutSessions verifies warm-ups are kept ahead of working sets,
// all sets are completed, and the duration is carried over.
func TestToWorkoutSessions(t *testing.T) {
	parsed, err := Parse(strings.NewReader(sampleCSV), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	sessions := ToWorkoutSessions(parsed)
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d", len(sessions))
	}

	legs := sessions[0]
	if legs.DurationMinutes == nil || *legs.DurationMinutes != 62 {
		t.Errorf("duration = %v, want 62", legs.DurationMinutes)
	}
	hack := legs.Exercises[0]
	if hack.Name != "Hack Squats" || hack.ExerciseID != "alpha_hack_squats" {
		t.Errorf("exercise = %s / %s", hack.Name, hack.ExerciseID)
	}
	if len(hack.Sets) != 5 || hack.Sets[0].Weight != 37.5 || hack.Sets[2].Weight != 115 {
		t.Errorf("sets = %+v", hack.Sets)
	}
	for _, s := range hack.Sets {
		if !s.Completed {
			t.Errorf("set %s not completed", s.ID)
		}
	}
	// Bodyweight-plus keeps only the added load.
	if w := legs.Exercises[2].Sets[1].Weight; w != 35 {
		t.Errorf("hyperextension weight = %v, want 35", w)
	}
}

// TestToWorkoutSessionsStableIDs verifies converting the same export twice
// yields identical ids.
func TestToWorkoutSessionsStableIDs(t *testing.T) {
	parsed, _ := Parse(strings.NewReader(sampleCSV), time.UTC)
	a := ToWorkoutSessions(parsed)
	b := ToWorkoutSessions(parsed)
	if a[0].ID != b[0].ID || a[0].Exercises[1].Sets[0].ID != b[0].Exercises[1].Sets[0].ID {
		t.Error("ids differ between conversions")
	}
	if a[0].ID == a[1].ID {
		t.Error("distinct sessions share an id")
	}
}

// TestProviderIngestSkipsReimport verifies a second import of the same file
// adds nothing.
func TestProviderIngestSkipsReimport(t *testing.T) {
	sink := &fakeSink{}
	p := NewProvider(sink, time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := p.Ingest(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.SessionsReceived != 2 || res.SessionsAdded != 2 || res.ExercisesParsed != 7 || res.SetsParsed != 28 {
		t.Errorf("first result = %+v", res)
	}

	res, err = p.Ingest(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.SessionsAdded != 0 || res.SessionsSkipped != 2 {
		t.Errorf("second result = %+v", res)
	}
}

// TestProviderIngestEmpty verifies an empty upload is not an error.
func TestProviderIngestEmpty(t *testing.T) {
	p := NewProvider(&fakeSink{}, time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))
	res, err := p.Ingest(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.SessionsReceived != 0 || res.Message == "" {
		t.Errorf("result = %+v", res)
	}
}
