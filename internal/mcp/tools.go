package mcp

import (
	"context"
	"time"

	"github.com/claude/musclememo/internal/derive"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Aggregate statistics over all recorded workouts: totals, average volume, top exercises by frequency, personal records (heaviest single set), current daily streak and average workouts per week."),
)

var toolSearchHistory = mcp.NewTool("search_history",
	mcp.WithDescription("List past workouts newest first, optionally filtered by a case-insensitive term matched against exercise names, the date (YYYY/M/D or YYYY-MM-DD) and the coaching feedback."),
	mcp.WithString("term", mcp.Description("Search term. Empty returns every workout.")),
)

var toolGetCalendar = mcp.NewTool("get_calendar",
	mcp.WithDescription("Trained dates of one month with the body-part categories worked each day."),
	mcp.WithString("month", mcp.Description("Month as YYYY-MM. Defaults to the current month.")),
)

var toolGetDaySummary = mcp.NewTool("get_day_summary",
	mcp.WithDescription("Workouts of one date with set count and volume per body-part category and per exercise."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD")),
)

var toolGetExerciseRecord = mcp.NewTool("get_exercise_record",
	mcp.WithDescription("Most recent record of one exercise (max weight, sets, volume) and its volume over the last sessions, oldest first. The name must match exactly."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name as recorded, e.g. ベンチプレス")),
	mcp.WithNumber("limit", mcp.Description("Number of sessions in the volume series. Defaults to 5."), mcp.Min(1)),
)

// --- Tool handlers ---

func (h *handlers) getStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.Stats(ctx)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats)
}

func (h *handlers) searchHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.SearchHistory(ctx, req.GetString("term", ""))
	if err != nil {
		h.log.Error("mcp search_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(sessions)
}

func (h *handlers) getCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	month := h.now()
	if m := req.GetString("month", ""); m != "" {
		parsed, err := derive.ParseMonth(m)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		month = parsed
	}

	cal, err := h.ds.Calendar(ctx, month)
	if err != nil {
		h.log.Error("mcp get_calendar", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(cal)
}

func (h *handlers) getDaySummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	if _, err := time.Parse(derive.DateKeyLayout, date); err != nil {
		return mcp.NewToolResultError("date must be YYYY-MM-DD"), nil
	}

	day, err := h.ds.Day(ctx, date)
	if err != nil {
		h.log.Error("mcp get_day_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(day)
}

func (h *handlers) getExerciseRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	limit := req.GetInt("limit", derive.DefaultRecentLimit)

	rec, err := h.ds.ExerciseRecord(ctx, exercise, limit)
	if err != nil {
		h.log.Error("mcp get_exercise_record", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rec)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
