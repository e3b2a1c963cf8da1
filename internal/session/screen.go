// Package session holds the client's in-memory state: the active screen, the
// three request flows and the menu item open in detail view.
package session

import (
	"errors"
	"fmt"
)

// Screen is the active view. Exactly one is active at a time.
type Screen int

const (
	Home Screen = iota
	Weather
	Nutrition
	Menu
	MenuDetail
)

func (s Screen) String() string {
	switch s {
	case Home:
		return "home"
	case Weather:
		return "weather"
	case Nutrition:
		return "nutrition"
	case Menu:
		return "menu"
	case MenuDetail:
		return "menu-detail"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// ErrInvalidTransition is returned for any screen change the navigation
// model does not allow. The active screen is left unchanged.
var ErrInvalidTransition = errors.New("invalid screen transition")

// transitions lists every allowed move. Side effects are applied by Session.
var transitions = map[Screen][]Screen{
	Home:       {Weather, Nutrition, Menu},
	Weather:    {Home},
	Nutrition:  {Home},
	Menu:       {Home, MenuDetail},
	MenuDetail: {Menu},
}

// CanTransition reports whether from → to is an allowed move.
func CanTransition(from, to Screen) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Parent is the screen "back" leads to; Home has none.
func (s Screen) Parent() (Screen, bool) {
	switch s {
	case Weather, Nutrition, Menu:
		return Home, true
	case MenuDetail:
		return Menu, true
	default:
		return Home, false
	}
}
