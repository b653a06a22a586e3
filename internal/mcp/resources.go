package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/musclememo/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// recentDays is the window of the recent_workouts resource.
const recentDays = 14

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.ds.SearchHistory(ctx, "")
	if err != nil {
		return nil, err
	}

	since := h.now().AddDate(0, 0, -recentDays)
	recent := []models.WorkoutSession{}
	for _, s := range sessions {
		if !s.Date.Before(since) {
			recent = append(recent, s)
		}
	}
	return jsonContents(req.Params.URI, recent)
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.Exercises(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, exercises)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
