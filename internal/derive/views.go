package derive

import (
	"fmt"
	"time"

	"github.com/claude/musclememo/internal/models"
)

// DaySummary is everything shown for one calendar date.
type DaySummary struct {
	Date       string                                     `json:"date"`
	Sessions   []models.WorkoutSession                    `json:"sessions"`
	Categories map[models.BodyPartCategory]CategoryTotals `json:"categories"`
	Exercises  []ExerciseRow                              `json:"exercises"`
}

// Day builds the summary of dateKey from history.
func Day(history []models.WorkoutSession, dateKey string) DaySummary {
	sessions := SessionsOn(history, dateKey)
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	return DaySummary{
		Date:       dateKey,
		Sessions:   sessions,
		Categories: Summarize(sessions),
		Exercises:  DayExercises(sessions),
	}
}

// ExerciseRecord pairs the previous record of one exercise with its recent
// volume trend. Previous is nil when the exercise was never recorded.
type ExerciseRecord struct {
	Exercise      string    `json:"exercise"`
	Previous      *Record   `json:"previous"`
	RecentVolumes []float64 `json:"recent_volumes"`
}

// RecordFor builds the ExerciseRecord of exerciseName.
func RecordFor(exerciseName string, history []models.WorkoutSession, limit int) ExerciseRecord {
	rec := ExerciseRecord{
		Exercise:      exerciseName,
		RecentVolumes: RecentVolumes(exerciseName, history, limit),
	}
	if prev, ok := PreviousRecord(exerciseName, history); ok {
		rec.Previous = &prev
	}
	return rec
}

// CalendarMonth maps each trained date of one month to its categories.
type CalendarMonth struct {
	Month string                               `json:"month"`
	Days  map[string][]models.BodyPartCategory `json:"days"`
}

// MonthLayout is the month key format.
const MonthLayout = "2006-01"

// Month builds the calendar of the local month containing t.
func Month(history []models.WorkoutSession, t time.Time) CalendarMonth {
	return CalendarMonth{
		Month: t.Format(MonthLayout),
		Days:  MonthIndex(history, t.Year(), t.Month()),
	}
}

// ParseMonth reads a YYYY-MM key as the first instant of that local month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("month must be YYYY-MM: %w", err)
	}
	return t, nil
}
