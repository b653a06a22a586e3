package workout

import (
	"testing"
	"time"

	"github.com/claude/musclememo/internal/models"
)

// TestHistoryPrependNewestFirst verifies commits land at the front and
// duplicate ids are rejected.
func TestHistoryPrependNewestFirst(t *testing.T) {
	h := NewHistory(nil)
	h.Prepend(models.WorkoutSession{ID: "a"})
	h.Prepend(models.WorkoutSession{ID: "b"})
	if h.Prepend(models.WorkoutSession{ID: "a"}) {
		t.Error("duplicate id accepted")
	}

	s := h.Sessions()
	if len(s) != 2 || s[0].ID != "b" || s[1].ID != "a" {
		t.Errorf("order = %v", ids(s))
	}
}

// TestHistoryDelete verifies delete-by-id and the not-found case.
func TestHistoryDelete(t *testing.T) {
	h := NewHistory([]models.WorkoutSession{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	if !h.Delete("b") {
		t.Fatal("Delete(b) = false")
	}
	if h.Delete("b") {
		t.Error("second Delete(b) = true")
	}
	if got := ids(h.Sessions()); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("ids = %v", got)
	}
}

// TestHistoryMergeSortsByDate verifies imported sessions are interleaved by
// date, newest first, and known ids are skipped.
func TestHistoryMergeSortsByDate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 1, d, 12, 0, 0, 0, time.UTC) }
	h := NewHistory([]models.WorkoutSession{{ID: "jan10", Date: day(10)}, {ID: "jan5", Date: day(5)}})

	added := h.Merge([]models.WorkoutSession{
		{ID: "jan7", Date: day(7)},
		{ID: "jan12", Date: day(12)},
		{ID: "jan5", Date: day(5)},
	})
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	want := []string{"jan12", "jan10", "jan7", "jan5"}
	got := ids(h.Sessions())
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

// TestHistorySessionsIsCopy verifies callers can't mutate committed sessions.
func TestHistorySessionsIsCopy(t *testing.T) {
	h := NewHistory([]models.WorkoutSession{{ID: "a", Exercises: []models.WorkoutExercise{{Name: "x", Sets: []models.WorkoutSet{{Weight: 10}}}}}})
	s := h.Sessions()
	s[0].Exercises[0].Sets[0].Weight = 999

	got, _ := h.Get("a")
	if got.Exercises[0].Sets[0].Weight != 10 {
		t.Errorf("history mutated through copy: %v", got.Exercises[0].Sets[0].Weight)
	}
}

func ids(sessions []models.WorkoutSession) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}
