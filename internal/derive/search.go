package derive

import (
	"strings"

	"github.com/claude/musclememo/internal/models"
)

// displayDateLayout is the short local date shown in the history list.
const displayDateLayout = "2006/1/2"

// Search returns the sessions whose exercise names, local date or feedback
// contain term, case-insensitively, in history order. An empty term matches
// everything.
func Search(history []models.WorkoutSession, term string) []models.WorkoutSession {
	if term == "" {
		return append([]models.WorkoutSession{}, history...)
	}
	term = strings.ToLower(term)
	out := []models.WorkoutSession{}
	for _, s := range history {
		if matches(s, term) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s models.WorkoutSession, term string) bool {
	for _, ex := range s.Exercises {
		if strings.Contains(strings.ToLower(ex.Name), term) {
			return true
		}
	}
	local := s.Date.Local()
	if strings.Contains(local.Format(displayDateLayout), term) ||
		strings.Contains(local.Format(DateKeyLayout), term) {
		return true
	}
	return s.AIFeedback != nil && strings.Contains(strings.ToLower(*s.AIFeedback), term)
}
