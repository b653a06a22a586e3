package catalog

import "github.com/claude/musclememo/internal/models"

// categoryBuckets maps display-language category tokens onto body-part buckets.
var categoryBuckets = map[string]models.BodyPartCategory{
	"胸":         models.CategoryChest,
	"Chest":     models.CategoryChest,
	"背中":        models.CategoryBack,
	"Back":      models.CategoryBack,
	"脚":         models.CategoryLegs,
	"Legs":      models.CategoryLegs,
	"肩":         models.CategoryShoulders,
	"Shoulders": models.CategoryShoulders,
	"腕":         models.CategoryArms,
	"Arms":      models.CategoryArms,
	"腹筋":        models.CategoryCore,
	"Core":      models.CategoryCore,
	"有酸素":       models.CategoryCardio,
	"その他":       models.CategoryChest,
}

// BucketFor maps a catalog category token to its bucket. Unknown tokens land
// in chest.
func BucketFor(token string) models.BodyPartCategory {
	if b, ok := categoryBuckets[token]; ok {
		return b
	}
	return models.CategoryChest
}
