package models

// BodyPartCategory is a derived muscle-group bucket. It is never stored on a
// session; it is recomputed from exercise names whenever a view needs it.
type BodyPartCategory string

const (
	CategoryChest     BodyPartCategory = "chest"
	CategoryBack      BodyPartCategory = "back"
	CategoryLegs      BodyPartCategory = "legs"
	CategoryShoulders BodyPartCategory = "shoulders"
	CategoryArms      BodyPartCategory = "arms"
	CategoryCore      BodyPartCategory = "core"
	CategoryCardio    BodyPartCategory = "cardio"
)

// Categories lists every bucket in display order.
var Categories = []BodyPartCategory{
	CategoryChest,
	CategoryBack,
	CategoryLegs,
	CategoryShoulders,
	CategoryArms,
	CategoryCore,
	CategoryCardio,
}
