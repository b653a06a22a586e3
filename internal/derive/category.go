// Package derive computes read-only views over workout history: calendar
// indicators, day summaries, per-exercise records, aggregate statistics and
// search. Every function is pure and cheap enough to recompute per request.
package derive

import (
	"strings"

	"github.com/claude/musclememo/internal/models"
)

// categoryKeywords is checked in order; the first bucket with a matching
// keyword wins. Changing it reclassifies every historical day.
var categoryKeywords = []struct {
	category models.BodyPartCategory
	keywords []string
}{
	{models.CategoryChest, []string{"bench", "ベンチ", "胸", "dip", "ディップ", "fly", "chest", "push"}},
	{models.CategoryBack, []string{"row", "pull", "lat", "dead", "背中", "懸垂"}},
	{models.CategoryLegs, []string{"squat", "leg", "脚", "スクワット", "calf"}},
	{models.CategoryShoulders, []string{"shoulder", "press", "肩", "オーバーヘッド", "lateral"}},
	{models.CategoryArms, []string{"curl", "tricep", "腕", "bicep", "カール"}},
	{models.CategoryCore, []string{"ab", "core", "腹", "crunch", "plank"}},
	{models.CategoryCardio, []string{"cardio", "run", "有酸素", "bike", "treadmill"}},
}

// CategoryOf infers a body-part bucket from an exercise name by
// case-insensitive keyword match. Unmatched names fall back to chest.
func CategoryOf(exerciseName string) models.BodyPartCategory {
	lower := strings.ToLower(exerciseName)
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(lower, kw) {
				return ck.category
			}
		}
	}
	return models.CategoryChest
}
