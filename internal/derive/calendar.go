package derive

import (
	"time"

	"github.com/claude/musclememo/internal/models"
)

// DateKeyLayout is the calendar key format.
const DateKeyLayout = "2006-01-02"

// DateKey returns t's local calendar date as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Local().Format(DateKeyLayout)
}

// IndexByDate maps each date with at least one session to the union of
// categories trained that day. Categories are listed in canonical order.
func IndexByDate(history []models.WorkoutSession) map[string][]models.BodyPartCategory {
	seen := make(map[string]map[models.BodyPartCategory]bool)
	for _, s := range history {
		key := DateKey(s.Date)
		cats, ok := seen[key]
		if !ok {
			cats = make(map[models.BodyPartCategory]bool)
			seen[key] = cats
		}
		for _, ex := range s.Exercises {
			cats[CategoryOf(ex.Name)] = true
		}
	}

	index := make(map[string][]models.BodyPartCategory, len(seen))
	for key, cats := range seen {
		list := make([]models.BodyPartCategory, 0, len(cats))
		for _, c := range models.Categories {
			if cats[c] {
				list = append(list, c)
			}
		}
		index[key] = list
	}
	return index
}

// MonthIndex is IndexByDate restricted to one local calendar month.
func MonthIndex(history []models.WorkoutSession, year int, month time.Month) map[string][]models.BodyPartCategory {
	var inMonth []models.WorkoutSession
	for _, s := range history {
		local := s.Date.Local()
		if local.Year() == year && local.Month() == month {
			inMonth = append(inMonth, s)
		}
	}
	return IndexByDate(inMonth)
}

// SessionsOn returns the sessions whose local date matches dateKey, in
// history order.
func SessionsOn(history []models.WorkoutSession, dateKey string) []models.WorkoutSession {
	var out []models.WorkoutSession
	for _, s := range history {
		if DateKey(s.Date) == dateKey {
			out = append(out, s)
		}
	}
	return out
}

// CategoryTotals accumulates sets and volume for one body-part bucket.
type CategoryTotals struct {
	SetCount int     `json:"set_count"`
	Volume   float64 `json:"volume"`
}

// Summarize totals sets and volume per inferred category across the given
// sessions. Sets count regardless of their completed flag.
func Summarize(sessions []models.WorkoutSession) map[models.BodyPartCategory]CategoryTotals {
	summary := make(map[models.BodyPartCategory]CategoryTotals)
	for _, s := range sessions {
		for _, ex := range s.Exercises {
			cat := CategoryOf(ex.Name)
			t := summary[cat]
			t.SetCount += len(ex.Sets)
			t.Volume += ex.Volume()
			summary[cat] = t
		}
	}
	return summary
}

// ExerciseRow is one exercise instance in a day's detail list.
type ExerciseRow struct {
	Name     string                  `json:"name"`
	Category models.BodyPartCategory `json:"category"`
	SetCount int                     `json:"set_count"`
	Volume   float64                 `json:"volume"`
}

// DayExercises flattens the sessions into one row per exercise instance.
func DayExercises(sessions []models.WorkoutSession) []ExerciseRow {
	rows := []ExerciseRow{}
	for _, s := range sessions {
		for _, ex := range s.Exercises {
			rows = append(rows, ExerciseRow{
				Name:     ex.Name,
				Category: CategoryOf(ex.Name),
				SetCount: len(ex.Sets),
				Volume:   ex.Volume(),
			})
		}
	}
	return rows
}
