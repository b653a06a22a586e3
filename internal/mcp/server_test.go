package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/musclememo/internal/derive"
	"github.com/claude/musclememo/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// stubSource serves fixed history through the derive package, like Local.
type stubSource struct {
	history  []models.WorkoutSession
	err      error
	gotMonth time.Time
	gotLimit int
}

func (s *stubSource) Stats(ctx context.Context) (derive.Stats, error) {
	return derive.ComputeStats(s.history, time.Date(2026, 3, 5, 12, 0, 0, 0, time.Local)), s.err
}

func (s *stubSource) SearchHistory(ctx context.Context, term string) ([]models.WorkoutSession, error) {
	return derive.Search(s.history, term), s.err
}

func (s *stubSource) Calendar(ctx context.Context, month time.Time) (derive.CalendarMonth, error) {
	s.gotMonth = month
	return derive.Month(s.history, month), s.err
}

func (s *stubSource) Day(ctx context.Context, date string) (derive.DaySummary, error) {
	return derive.Day(s.history, date), s.err
}

func (s *stubSource) ExerciseRecord(ctx context.Context, exercise string, limit int) (derive.ExerciseRecord, error) {
	s.gotLimit = limit
	return derive.RecordFor(exercise, s.history, limit), s.err
}

func (s *stubSource) Exercises(ctx context.Context) ([]models.Exercise, error) {
	return []models.Exercise{{ID: "bp", Name: "ベンチプレス", Category: "胸"}}, s.err
}

func sampleHistory() []models.WorkoutSession {
	return []models.WorkoutSession{
		{
			ID:   "new",
			Date: time.Date(2026, 3, 4, 19, 0, 0, 0, time.Local),
			Exercises: []models.WorkoutExercise{{
				ID: "i1", Name: "ベンチプレス",
				Sets: []models.WorkoutSet{{ID: "a", Weight: 80, Reps: 5}, {ID: "b", Weight: 80, Reps: 5}},
			}},
		},
		{
			ID:   "old",
			Date: time.Date(2026, 1, 10, 19, 0, 0, 0, time.Local),
			Exercises: []models.WorkoutExercise{{
				ID: "i2", Name: "スクワット",
				Sets: []models.WorkoutSet{{ID: "c", Weight: 100, Reps: 5}},
			}},
		},
	}
}

func newTestHandlers(src *stubSource) *handlers {
	return &handlers{
		ds:  src,
		now: func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local) },
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func call(t *testing.T, fn func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

// TestGetStatsTool verifies stats are serialized from the data source.
func TestGetStatsTool(t *testing.T) {
	h := newTestHandlers(&stubSource{history: sampleHistory()})
	res := call(t, h.getStats, nil)
	if res.IsError {
		t.Fatalf("error result: %s", resultText(t, res))
	}
	var stats derive.Stats
	if err := json.Unmarshal([]byte(resultText(t, res)), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalWorkouts != 2 || stats.TotalVolume != 1300 {
		t.Errorf("stats = %+v", stats)
	}
}

// TestSearchHistoryTool verifies the term filters sessions.
func TestSearchHistoryTool(t *testing.T) {
	h := newTestHandlers(&stubSource{history: sampleHistory()})
	res := call(t, h.searchHistory, map[string]any{"term": "スクワット"})
	var sessions []models.WorkoutSession
	if err := json.Unmarshal([]byte(resultText(t, res)), &sessions); err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].ID != "old" {
		t.Errorf("sessions = %+v", sessions)
	}
}

// TestGetCalendarTool verifies the month default and parsing.
func TestGetCalendarTool(t *testing.T) {
	src := &stubSource{history: sampleHistory()}
	h := newTestHandlers(src)

	res := call(t, h.getCalendar, nil)
	if res.IsError || src.gotMonth.Month() != time.March {
		t.Errorf("default month = %v", src.gotMonth)
	}

	res = call(t, h.getCalendar, map[string]any{"month": "2026-01"})
	var cal derive.CalendarMonth
	if err := json.Unmarshal([]byte(resultText(t, res)), &cal); err != nil {
		t.Fatal(err)
	}
	if cal.Month != "2026-01" || len(cal.Days["2026-01-10"]) != 1 {
		t.Errorf("calendar = %+v", cal)
	}

	if res := call(t, h.getCalendar, map[string]any{"month": "January"}); !res.IsError {
		t.Error("expected error result for bad month")
	}
}

// TestGetDaySummaryTool verifies the date is required and validated.
func TestGetDaySummaryTool(t *testing.T) {
	h := newTestHandlers(&stubSource{history: sampleHistory()})

	if res := call(t, h.getDaySummary, nil); !res.IsError {
		t.Error("expected error result without date")
	}
	if res := call(t, h.getDaySummary, map[string]any{"date": "2026/03/04"}); !res.IsError {
		t.Error("expected error result for bad date")
	}

	res := call(t, h.getDaySummary, map[string]any{"date": "2026-03-04"})
	var day derive.DaySummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &day); err != nil {
		t.Fatal(err)
	}
	if len(day.Sessions) != 1 || day.Categories[models.CategoryChest].Volume != 800 {
		t.Errorf("day = %+v", day)
	}
}

// TestGetExerciseRecordTool verifies the default limit and the record body.
func TestGetExerciseRecordTool(t *testing.T) {
	src := &stubSource{history: sampleHistory()}
	h := newTestHandlers(src)

	res := call(t, h.getExerciseRecord, map[string]any{"exercise": "ベンチプレス"})
	if src.gotLimit != derive.DefaultRecentLimit {
		t.Errorf("limit = %d, want default", src.gotLimit)
	}
	var rec derive.ExerciseRecord
	if err := json.Unmarshal([]byte(resultText(t, res)), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Previous == nil || rec.Previous.SessionID != "new" || rec.Previous.TotalSets != 2 {
		t.Errorf("record = %+v", rec)
	}

	call(t, h.getExerciseRecord, map[string]any{"exercise": "ベンチプレス", "limit": float64(3)})
	if src.gotLimit != 3 {
		t.Errorf("limit = %d, want 3", src.gotLimit)
	}
}

// TestToolSourceError verifies data source failures become error results.
func TestToolSourceError(t *testing.T) {
	h := newTestHandlers(&stubSource{err: errors.New("unreachable")})
	if res := call(t, h.getStats, nil); !res.IsError {
		t.Error("expected error result")
	}
}

// TestRecentWorkoutsResource verifies the 14-day window.
func TestRecentWorkoutsResource(t *testing.T) {
	h := newTestHandlers(&stubSource{history: sampleHistory()})
	var req mcp.ReadResourceRequest
	req.Params.URI = "musclememo://recent_workouts"

	contents, err := h.recentWorkouts(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents).Text
	var sessions []models.WorkoutSession
	if err := json.Unmarshal([]byte(text), &sessions); err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].ID != "new" {
		t.Errorf("recent = %+v", sessions)
	}
}

// TestExerciseCatalogResource verifies the catalog is served as JSON.
func TestExerciseCatalogResource(t *testing.T) {
	h := newTestHandlers(&stubSource{})
	var req mcp.ReadResourceRequest
	req.Params.URI = "musclememo://exercise_catalog"

	contents, err := h.exerciseCatalog(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	tc := contents[0].(mcp.TextResourceContents)
	if tc.URI != req.Params.URI || tc.MIMEType != "application/json" {
		t.Errorf("contents = %+v", tc)
	}
}
