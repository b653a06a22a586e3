package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/musclememo/internal/metrics"
	"github.com/claude/musclememo/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSession(date time.Time, sets ...models.WorkoutSet) models.WorkoutSession {
	return models.WorkoutSession{
		ID:        "s1",
		Date:      date,
		Exercises: []models.WorkoutExercise{{ID: "i1", ExerciseID: "bp", Name: "ベンチプレス", Sets: sets}},
	}
}

type recorder struct{ outcomes []string }

func (r *recorder) FeedbackOutcome(o string) { r.outcomes = append(r.outcomes, o) }

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	return s.text, s.err
}

// TestBuildPromptComparison verifies volumes, per-set detail and the signed
// percentage change against history[0].
func TestBuildPromptComparison(t *testing.T) {
	day := time.Date(2026, 3, 10, 18, 0, 0, 0, time.Local)
	cur := testSession(day, models.WorkoutSet{Weight: 60, Reps: 10}, models.WorkoutSet{Weight: 62.5, Reps: 8})
	prev := testSession(day.AddDate(0, 0, -3), models.WorkoutSet{Weight: 50, Reps: 20})

	p := BuildPrompt(cur, []models.WorkoutSession{prev})
	for _, want := range []string{
		"Date: 2026/3/10",
		"Total Volume: 1100kg",
		"- ベンチプレス: Set 1: 60kg x 10, Set 2: 62.5kg x 8",
		"Previous Date: 2026/3/7",
		"Previous Volume: 1000kg",
		"Change: +10.0%",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
}

// TestBuildPromptFirstSession verifies the no-history wording.
func TestBuildPromptFirstSession(t *testing.T) {
	p := BuildPrompt(testSession(time.Now(), models.WorkoutSet{Weight: 20, Reps: 10}), nil)
	if !strings.Contains(p, "First recorded session.") {
		t.Errorf("prompt = %s", p)
	}
}

// TestBuildPromptZeroPrevious verifies a zero-volume previous session reports
// 0% rather than dividing by zero.
func TestBuildPromptZeroPrevious(t *testing.T) {
	cur := testSession(time.Now(), models.WorkoutSet{Weight: 20, Reps: 10})
	prev := testSession(time.Now(), models.WorkoutSet{Weight: 0, Reps: 10})
	if p := BuildPrompt(cur, []models.WorkoutSession{prev}); !strings.Contains(p, "Change: +0%") {
		t.Errorf("prompt = %s", p)
	}
}

// TestCoachFallbacks verifies every failure mode returns its fallback text
// and records the outcome.
func TestCoachFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		gen     Generator
		want    string
		outcome string
	}{
		{"no key", nil, FallbackNoKey, metrics.OutcomeFallbackNoKey},
		{"error", stubGenerator{err: errors.New("503")}, FallbackError, metrics.OutcomeFallbackError},
		{"empty", stubGenerator{text: "  \n"}, FallbackEmpty, metrics.OutcomeFallbackEmpty},
		{"generated", stubGenerator{text: " Nice pace. "}, "Nice pace.", metrics.OutcomeGenerated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := NewCoach(tt.gen, time.Second, rec, testLogger())
			got := c.RequestFeedback(context.Background(), testSession(time.Now()), nil)
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if len(rec.outcomes) != 1 || rec.outcomes[0] != tt.outcome {
				t.Errorf("outcomes = %v, want [%s]", rec.outcomes, tt.outcome)
			}
		})
	}
}

// TestCoachTimeout verifies a stalled provider is cut off by the timeout.
func TestCoachTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewCoach(NewGeminiClient("key", "gemini-2.0-flash", srv.URL), 50*time.Millisecond, nil, testLogger())
	start := time.Now()
	got := c.RequestFeedback(context.Background(), testSession(time.Now()), nil)
	if got != FallbackError {
		t.Errorf("text = %q, want error fallback", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("took %v, timeout not applied", elapsed)
	}
}

// TestGeminiGenerate verifies the request shape and response parsing against
// a fake endpoint.
func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Good "},{"text":"job"}]}}]}`)
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", "gemini-2.0-flash", srv.URL+"/")
	text, err := c.Generate(context.Background(), "sys", "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Good job" {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("path = %s", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != "sys" {
		t.Errorf("system instruction = %+v", gotReq.SystemInstruction)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "hello" {
		t.Errorf("contents = %+v", gotReq.Contents)
	}
}

// TestGeminiErrorStatus verifies non-200 responses become errors.
func TestGeminiErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewGeminiClient("bad", "gemini-2.0-flash", srv.URL).Generate(context.Background(), "", "x")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Errorf("err = %v, want status 400", err)
	}
}

// TestGeminiNoCandidates verifies an empty candidate list yields empty text.
func TestGeminiNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	text, err := NewGeminiClient("k", "m", srv.URL).Generate(context.Background(), "", "x")
	if err != nil || text != "" {
		t.Errorf("Generate = %q, %v", text, err)
	}
}
