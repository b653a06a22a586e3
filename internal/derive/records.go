package derive

import (
	"slices"

	"github.com/claude/musclememo/internal/models"
)

// DefaultRecentLimit is the number of points in a recent-volume series.
const DefaultRecentLimit = 5

// Record summarizes one exercise instance from a past session.
type Record struct {
	SessionID   string  `json:"session_id"`
	MaxWeight   float64 `json:"max_weight"`
	TotalSets   int     `json:"total_sets"`
	TotalVolume float64 `json:"total_volume"`
}

// PreviousRecord finds the most recent session (history is newest first)
// containing an instance named exactly exerciseName and summarizes that
// instance. It reports false when the exercise was never recorded.
func PreviousRecord(exerciseName string, history []models.WorkoutSession) (Record, bool) {
	for _, s := range history {
		for _, ex := range s.Exercises {
			if ex.Name != exerciseName {
				continue
			}
			return Record{
				SessionID:   s.ID,
				MaxWeight:   ex.MaxWeight(),
				TotalSets:   len(ex.Sets),
				TotalVolume: ex.Volume(),
			}, true
		}
	}
	return Record{}, false
}

// RecentVolumes returns the instance volume of exerciseName from its last
// limit sessions, ordered oldest to newest. A non-positive limit means
// DefaultRecentLimit.
func RecentVolumes(exerciseName string, history []models.WorkoutSession, limit int) []float64 {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	vols := []float64{}
	for _, s := range history {
		if len(vols) == limit {
			break
		}
		for _, ex := range s.Exercises {
			if ex.Name == exerciseName {
				vols = append(vols, ex.Volume())
				break
			}
		}
	}
	slices.Reverse(vols)
	return vols
}
