package shell

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"tasterover/internal/api"
)

// menuEntry adapts a menu item to the bubbles list.
type menuEntry struct {
	item api.MenuItem
}

func (e menuEntry) Title() string { return e.item.Name }

func (e menuEntry) Description() string {
	kcal := e.item.Nutrition.EnergyKcal
	return fmt.Sprintf("%s · %.0f kcal", e.item.DisplayPrice(), kcal)
}

func (e menuEntry) FilterValue() string { return e.item.Name }

func toEntries(items []api.MenuItem) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = menuEntry{item: it}
	}
	return out
}

func newMenuList(width, height int) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "McDonald's Menu"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("product", "products")
	l.DisableQuitKeybindings()
	return l
}
