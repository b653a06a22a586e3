package upload

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claude/musclememo/internal/ingest"
)

// TestSendAlphaCSV verifies the export is posted with the API key and the
// server's result is decoded.
func TestSendAlphaCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/import/alpha" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "k" {
			t.Errorf("X-API-Key = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "csv-data" {
			t.Errorf("body = %q", body)
		}
		json.NewEncoder(w).Encode(ingest.Result{SessionsReceived: 2, SessionsAdded: 1, SessionsSkipped: 1})
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL+"/", "k").SendAlphaCSV(context.Background(), []byte("csv-data"))
	if err != nil {
		t.Fatalf("SendAlphaCSV: %v", err)
	}
	if result.SessionsAdded != 1 || result.SessionsSkipped != 1 {
		t.Errorf("result = %+v", result)
	}
}

// TestSendAlphaCSVRetriesServerErrors verifies a 5xx is retried until it succeeds.
func TestSendAlphaCSVRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(ingest.Result{SessionsAdded: 4})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	c.backoff = time.Millisecond
	result, err := c.SendAlphaCSV(context.Background(), []byte("x"))
	if err != nil {
		t.Fatalf("SendAlphaCSV: %v", err)
	}
	if calls.Load() != 3 || result.SessionsAdded != 4 {
		t.Errorf("calls = %d, result = %+v", calls.Load(), result)
	}
}

// TestSendAlphaCSVClientErrorIsFinal verifies a 4xx is not retried.
func TestSendAlphaCSVClientErrorIsFinal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"bad csv"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	c.backoff = time.Millisecond
	_, err := c.SendAlphaCSV(context.Background(), []byte("x"))
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("err = %v, want status 400", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}
