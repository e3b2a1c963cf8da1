package session

import (
	"github.com/google/uuid"

	"tasterover/internal/api"
)

// Selection remembers which menu item is open in detail view by key. The
// item itself is looked up in the current menu whenever it is needed.
type Selection struct {
	key uuid.UUID
	set bool
}

// Set selects key.
func (s *Selection) Set(key uuid.UUID) {
	s.key = key
	s.set = true
}

// Clear empties the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// Key returns the selected key and whether one is set.
func (s Selection) Key() (uuid.UUID, bool) {
	return s.key, s.set
}

// Resolve finds the selected item in items.
func (s Selection) Resolve(items []api.MenuItem) (api.MenuItem, bool) {
	if !s.set {
		return api.MenuItem{}, false
	}
	return api.FindItem(items, s.key)
}
