package derive

import (
	"math"
	"sort"
	"time"

	"github.com/claude/musclememo/internal/models"
)

// TopN is the length of the frequency and personal-record rankings.
const TopN = 5

// NameCount is an exercise name with how many instances were recorded.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NameWeight is an exercise name with its heaviest single set.
type NameWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Stats holds aggregate statistics over the whole history.
type Stats struct {
	TotalWorkouts   int          `json:"total_workouts"`
	TotalVolume     float64      `json:"total_volume"`
	TotalSets       int          `json:"total_sets"`
	TotalExercises  int          `json:"total_exercises"`
	AverageVolume   float64      `json:"average_volume"`
	TopExercises    []NameCount  `json:"top_exercises"`
	PersonalRecords []NameWeight `json:"personal_records"`
	Streak          int          `json:"streak"`
	WeeklyAverage   float64      `json:"weekly_average"`
}

// ComputeStats reduces history (newest first) into Stats. now anchors the
// streak.
func ComputeStats(history []models.WorkoutSession, now time.Time) Stats {
	st := Stats{
		TotalWorkouts:   len(history),
		TopExercises:    top(ExerciseFrequency(history), func(n NameCount) float64 { return float64(n.Count) }),
		PersonalRecords: top(PersonalRecords(history), func(n NameWeight) float64 { return n.Weight }),
		Streak:          Streak(history, now),
		WeeklyAverage:   WeeklyAverage(history),
	}
	for _, s := range history {
		st.TotalVolume += s.Volume()
		st.TotalSets += s.SetCount()
		st.TotalExercises += len(s.Exercises)
	}
	if st.TotalWorkouts > 0 {
		st.AverageVolume = st.TotalVolume / float64(st.TotalWorkouts)
	}
	return st
}

// ExerciseFrequency counts exercise instances per name across all sessions,
// so a name repeated within one session counts each time. Entries are in
// first-seen order.
func ExerciseFrequency(history []models.WorkoutSession) []NameCount {
	var out []NameCount
	pos := make(map[string]int)
	for _, s := range history {
		for _, ex := range s.Exercises {
			i, ok := pos[ex.Name]
			if !ok {
				pos[ex.Name] = len(out)
				out = append(out, NameCount{Name: ex.Name})
				i = len(out) - 1
			}
			out[i].Count++
		}
	}
	return out
}

// PersonalRecords returns the heaviest single set ever recorded per exercise
// name, in first-seen order. Instances without sets are ignored.
func PersonalRecords(history []models.WorkoutSession) []NameWeight {
	var out []NameWeight
	pos := make(map[string]int)
	for _, s := range history {
		for _, ex := range s.Exercises {
			if len(ex.Sets) == 0 {
				continue
			}
			w := ex.MaxWeight()
			i, ok := pos[ex.Name]
			if !ok {
				pos[ex.Name] = len(out)
				out = append(out, NameWeight{Name: ex.Name, Weight: w})
				continue
			}
			if w > out[i].Weight {
				out[i].Weight = w
			}
		}
	}
	return out
}

// top sorts descending by key, keeping first-seen order for ties, and
// truncates to TopN.
func top[T any](items []T, key func(T) float64) []T {
	out := append([]T{}, items...)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}

// Streak counts consecutive training days walking back from now. Multiple
// sessions on one day count once; the walk stops at the first gap of more
// than one day.
func Streak(history []models.WorkoutSession, now time.Time) int {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, s := range history {
		d := localMidnight(s.Date)
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 0
	cursor := now
	for _, d := range days {
		if math.Floor(cursor.Sub(d).Hours()/24) > 1 {
			break
		}
		streak++
		cursor = d
	}
	return streak
}

// WeeklyAverage divides the session count by the number of weeks between the
// oldest and newest session (at least one). With fewer than two sessions it
// is the session count. Rounded to one decimal.
func WeeklyAverage(history []models.WorkoutSession) float64 {
	n := len(history)
	if n < 2 {
		return float64(n)
	}
	span := history[0].Date.Sub(history[n-1].Date)
	weeks := math.Max(1, math.Ceil(span.Hours()/(24*7)))
	return math.Round(float64(n)/weeks*10) / 10
}

func localMidnight(t time.Time) time.Time {
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}
