package workout

import (
	"sort"

	"github.com/claude/musclememo/internal/models"
)

// History is the committed session list, newest first. Ids are unique.
type History struct {
	sessions []models.WorkoutSession
}

// NewHistory wraps an already ordered session list.
func NewHistory(sessions []models.WorkoutSession) *History {
	return &History{sessions: models.CloneSessions(sessions)}
}

// Sessions returns a deep copy in stored order.
func (h *History) Sessions() []models.WorkoutSession {
	return models.CloneSessions(h.sessions)
}

// Len returns the number of committed sessions.
func (h *History) Len() int {
	return len(h.sessions)
}

// Get returns the session with the given id.
func (h *History) Get(id string) (models.WorkoutSession, bool) {
	for _, s := range h.sessions {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return models.WorkoutSession{}, false
}

// Prepend adds a freshly committed session at the front. A session whose id
// is already present is rejected.
func (h *History) Prepend(s models.WorkoutSession) bool {
	if _, ok := h.Get(s.ID); ok {
		return false
	}
	h.sessions = append([]models.WorkoutSession{s.Clone()}, h.sessions...)
	return true
}

// Delete removes the session with the given id.
func (h *History) Delete(id string) bool {
	for i, s := range h.sessions {
		if s.ID == id {
			h.sessions = append(h.sessions[:i], h.sessions[i+1:]...)
			return true
		}
	}
	return false
}

// Merge adds sessions whose ids are not yet present and re-sorts newest
// first by date. Existing relative order is kept for equal dates. It returns
// the number of sessions added.
func (h *History) Merge(sessions []models.WorkoutSession) int {
	added := 0
	for _, s := range sessions {
		if _, ok := h.Get(s.ID); ok {
			continue
		}
		h.sessions = append(h.sessions, s.Clone())
		added++
	}
	if added > 0 {
		sort.SliceStable(h.sessions, func(i, j int) bool {
			return h.sessions[i].Date.After(h.sessions[j].Date)
		})
	}
	return added
}
