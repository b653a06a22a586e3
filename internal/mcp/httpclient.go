package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/musclememo/internal/derive"
	"github.com/claude/musclememo/internal/models"
)

// HTTPClient implements DataSource by calling the MuscleMemo REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Stats(ctx context.Context) (derive.Stats, error) {
	var stats derive.Stats
	err := c.get(ctx, "/api/v1/stats", nil, &stats)
	return stats, err
}

func (c *HTTPClient) SearchHistory(ctx context.Context, term string) ([]models.WorkoutSession, error) {
	params := url.Values{}
	if term != "" {
		params.Set("q", term)
	}
	var sessions []models.WorkoutSession
	if err := c.get(ctx, "/api/v1/history", params, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *HTTPClient) Calendar(ctx context.Context, month time.Time) (derive.CalendarMonth, error) {
	params := url.Values{}
	params.Set("month", month.Format(derive.MonthLayout))
	var cal derive.CalendarMonth
	err := c.get(ctx, "/api/v1/calendar", params, &cal)
	return cal, err
}

func (c *HTTPClient) Day(ctx context.Context, date string) (derive.DaySummary, error) {
	var day derive.DaySummary
	err := c.get(ctx, "/api/v1/calendar/"+url.PathEscape(date), nil, &day)
	return day, err
}

func (c *HTTPClient) ExerciseRecord(ctx context.Context, exercise string, limit int) (derive.ExerciseRecord, error) {
	params := url.Values{}
	params.Set("exercise", exercise)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var rec derive.ExerciseRecord
	err := c.get(ctx, "/api/v1/records", params, &rec)
	return rec, err
}

func (c *HTTPClient) Exercises(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := c.get(ctx, "/api/v1/exercises", nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}
