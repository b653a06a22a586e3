// Package catalog holds the exercise list offered when building a workout:
// the fixed built-in entries followed by user-added custom entries.
package catalog

import (
	"strings"
	"sync"

	"github.com/claude/musclememo/internal/models"
	"github.com/google/uuid"
)

// Builtin is the fixed exercise list shipped with the app.
var Builtin = []models.Exercise{
	{ID: "bp", Name: "ベンチプレス", Category: "胸"},
	{ID: "sq", Name: "スクワット", Category: "脚"},
	{ID: "dl", Name: "デッドリフト", Category: "背中"},
	{ID: "ohp", Name: "オーバーヘッドプレス", Category: "肩"},
	{ID: "db_row", Name: "ダンベルロウ", Category: "背中"},
	{ID: "pullup", Name: "懸垂", Category: "背中"},
	{ID: "dip", Name: "ディップス", Category: "胸"},
	{ID: "curl", Name: "バーベルカール", Category: "腕"},
	{ID: "tri_ext", Name: "トライセップエクステンション", Category: "腕"},
	{ID: "leg_press", Name: "レッグプレス", Category: "脚"},
	{ID: "lat_pd", Name: "ラットプルダウン", Category: "背中"},
	{ID: "inc_bp", Name: "インクラインベンチプレス", Category: "胸"},
}

// CategoryOptions are the tokens offered when adding a custom exercise.
var CategoryOptions = []string{"胸", "背中", "脚", "肩", "腕", "その他"}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	builtin []models.Exercise
	custom  []models.Exercise
}

// New creates a catalog over the given built-in list. Pass nil for Builtin.
func New(builtin []models.Exercise) *Catalog {
	if builtin == nil {
		builtin = Builtin
	}
	return &Catalog{builtin: builtin}
}

// List returns built-ins followed by custom entries in addition order.
func (c *Catalog) List() []models.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Exercise, 0, len(c.builtin)+len(c.custom))
	out = append(out, c.builtin...)
	return append(out, c.custom...)
}

// Custom returns only the user-added entries.
func (c *Catalog) Custom() []models.Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Exercise(nil), c.custom...)
}

// Find looks an exercise up by id. Built-ins win over custom entries.
func (c *Catalog) Find(id string) (models.Exercise, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ex := range c.builtin {
		if ex.ID == id {
			return ex, true
		}
	}
	for _, ex := range c.custom {
		if ex.ID == id {
			return ex, true
		}
	}
	return models.Exercise{}, false
}

// AddCustom appends a user-defined exercise with a fresh id. Blank names are
// ignored and reported with ok=false; trimming is the caller's job. Name
// collisions with existing entries are allowed.
func (c *Catalog) AddCustom(name, category string) (ex models.Exercise, ok bool) {
	if strings.TrimSpace(name) == "" {
		return models.Exercise{}, false
	}
	ex = models.Exercise{
		ID:       "custom_" + uuid.NewString(),
		Name:     name,
		Category: category,
	}
	c.mu.Lock()
	c.custom = append(c.custom, ex)
	c.mu.Unlock()
	return ex, true
}

// Restore replaces the custom list, used when loading a persisted snapshot.
func (c *Catalog) Restore(custom []models.Exercise) {
	c.mu.Lock()
	c.custom = append([]models.Exercise(nil), custom...)
	c.mu.Unlock()
}

// ByCategory returns catalog entries whose category token maps to bucket,
// built-ins first. The result is empty, never nil, when nothing matches.
func (c *Catalog) ByCategory(bucket models.BodyPartCategory) []models.Exercise {
	out := []models.Exercise{}
	for _, ex := range c.List() {
		if BucketFor(ex.Category) == bucket {
			out = append(out, ex)
		}
	}
	return out
}
