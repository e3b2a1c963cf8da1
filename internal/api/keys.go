package api

import (
	"strconv"

	"github.com/google/uuid"
)

var menuNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tasterover/menu"))

// AssignKeys gives every item a deterministic key derived from its name and
// how many earlier items share that name.
func AssignKeys(items []MenuItem) {
	seen := make(map[string]int, len(items))
	for i := range items {
		n := seen[items[i].Name]
		seen[items[i].Name] = n + 1
		items[i].Key = uuid.NewSHA1(menuNamespace, []byte(items[i].Name+"#"+strconv.Itoa(n)))
	}
}

// FindItem returns the item with key, if present.
func FindItem(items []MenuItem, key uuid.UUID) (MenuItem, bool) {
	for _, it := range items {
		if it.Key == key {
			return it, true
		}
	}
	return MenuItem{}, false
}
