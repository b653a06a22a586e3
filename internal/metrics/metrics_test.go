package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestFeedbackOutcomeCounts verifies outcomes are counted per label.
func TestFeedbackOutcomeCounts(t *testing.T) {
	m := NewTest()
	m.FeedbackOutcome(OutcomeGenerated)
	m.FeedbackOutcome(OutcomeGenerated)
	m.FeedbackOutcome(OutcomeFallbackNoKey)

	if got := testutil.ToFloat64(m.Feedback.WithLabelValues(OutcomeGenerated)); got != 2 {
		t.Errorf("generated = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Feedback.WithLabelValues(OutcomeFallbackNoKey)); got != 1 {
		t.Errorf("fallback_no_key = %v, want 1", got)
	}
}

// TestWorkoutCommitted verifies the commit counter and the history gauge,
// which can also shrink.
func TestWorkoutCommitted(t *testing.T) {
	m := NewTest()
	m.WorkoutCommitted()
	m.HistoryChanged(4)
	m.WorkoutCommitted()
	m.HistoryChanged(6)
	m.HistoryChanged(5)

	if got := testutil.ToFloat64(m.WorkoutsCommitted); got != 2 {
		t.Errorf("committed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Sessions); got != 5 {
		t.Errorf("sessions = %v, want 5", got)
	}
}

// TestHandlerExposesCounters verifies the exposition includes metric names.
func TestHandlerExposesCounters(t *testing.T) {
	m := NewTest()
	m.WorkoutCommitted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "musclememo_workouts_committed_total 1") {
		t.Errorf("body missing counter:\n%s", body)
	}
}
