package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tasterover/internal/api"
	"tasterover/internal/flow"
	"tasterover/internal/logging"
)

// ErrUnknownItem is returned when a detail view is requested for an item
// that is not in the current menu.
var ErrUnknownItem = errors.New("menu item not found")

// Backend is the subset of *api.Client the session needs.
type Backend interface {
	Weather(ctx context.Context, postcode string) (api.WeatherResult, error)
	Nutrition(ctx context.Context, ingredients []string) (api.NutritionResult, error)
	Menu(ctx context.Context) ([]api.MenuItem, error)
}

type (
	WeatherFlow   = flow.Flow[string, api.WeatherResult]
	NutritionFlow = flow.Flow[[]string, api.NutritionResult]
	MenuFlow      = flow.Flow[struct{}, []api.MenuItem]
)

// Task finishes work started by a session operation. Callers run it off the
// UI goroutine and re-read state when it returns. A non-nil Task must be run:
// its flow is already Loading and stays there until the Task settles it.
type Task func(ctx context.Context)

// Session composes the navigation state machine, the three flows and the
// detail selection.
type Session struct {
	mu        sync.Mutex
	screen    Screen
	selection Selection

	weather   *WeatherFlow
	nutrition *NutritionFlow
	menu      *MenuFlow
}

// New creates a session on the Home screen with all flows Idle.
// adminMessage replaces the text of quota failures in every flow.
func New(backend Backend, adminMessage string) *Session {
	return &Session{
		screen: Home,
		weather: flow.New(flow.Config[string, api.WeatherResult]{
			Name:         "weather",
			Validate:     validatePostcode,
			Fetch:        backend.Weather,
			AdminMessage: adminMessage,
		}),
		nutrition: flow.New(flow.Config[[]string, api.NutritionResult]{
			Name:         "nutrition",
			Validate:     validateIngredients,
			Fetch:        backend.Nutrition,
			AdminMessage: adminMessage,
		}),
		menu: flow.New(flow.Config[struct{}, []api.MenuItem]{
			Name: "menu",
			Fetch: func(ctx context.Context, _ struct{}) ([]api.MenuItem, error) {
				return backend.Menu(ctx)
			},
			AdminMessage: adminMessage,
		}),
	}
}

// Screen returns the active screen.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Session) WeatherFlow() *WeatherFlow     { return s.weather }
func (s *Session) NutritionFlow() *NutritionFlow { return s.nutrition }
func (s *Session) MenuFlow() *MenuFlow           { return s.menu }

// MenuItems returns the cached menu; empty unless the last load succeeded.
func (s *Session) MenuItems() []api.MenuItem {
	return s.menu.State().Result
}

// Navigate moves to another screen, applying the side effects of leaving
// and entering. Entering Menu may return a Task loading the menu.
// MenuDetail needs an item and is reached through OpenDetail instead.
func (s *Session) Navigate(to Screen) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.screen
	if to == MenuDetail || !CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	switch from {
	case Weather:
		s.weather.Reset()
	case Nutrition:
		s.nutrition.Reset()
	case MenuDetail:
		s.selection.Clear()
	}

	s.screen = to
	logging.Navigation("%s -> %s", from, to)

	if to == Menu {
		return s.ensureMenu(), nil
	}
	return nil, nil
}

// Back moves to the parent of the active screen. Going back to Menu may
// return a Task, as with Navigate.
func (s *Session) Back() (Task, error) {
	parent, ok := s.Screen().Parent()
	if !ok {
		return nil, fmt.Errorf("%w: no screen behind %s", ErrInvalidTransition, Home)
	}
	return s.Navigate(parent)
}

// OpenDetail selects the menu item with key and shows it.
func (s *Session) OpenDetail(key uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != Menu {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.screen, MenuDetail)
	}
	item, ok := api.FindItem(s.menu.State().Result, key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, key)
	}

	s.selection.Set(key)
	s.screen = MenuDetail
	logging.Navigation("%s -> %s (%s)", Menu, MenuDetail, item.Name)
	return nil
}

// Selected resolves the selection against the current menu. It reports
// false when nothing is selected or the item has left the menu.
func (s *Session) Selected() (api.MenuItem, bool) {
	s.mu.Lock()
	sel := s.selection
	s.mu.Unlock()
	return sel.Resolve(s.menu.State().Result)
}

// HasSelection reports whether a selection is held, resolvable or not.
func (s *Session) HasSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selection.Key()
	return ok
}

// SubmitWeather starts a lookup for postcode.
func (s *Session) SubmitWeather(postcode string) (Task, error) {
	call, err := s.weather.Trigger(postcode)
	return task(call, err)
}

// SubmitNutrition starts an estimate for the ingredient lines in text.
func (s *Session) SubmitNutrition(text string) (Task, error) {
	call, err := s.nutrition.Trigger(SplitLines(text))
	return task(call, err)
}

// ReloadMenu fetches the menu again even if one is cached. It is allowed on
// any screen; an open detail view re-resolves against the new menu.
func (s *Session) ReloadMenu() (Task, error) {
	call, err := s.menu.Trigger(struct{}{})
	return task(call, err)
}

// ensureMenu loads the menu when nothing is cached and no load is running.
// A failed load leaves the cache empty, so the next visit tries again.
func (s *Session) ensureMenu() Task {
	st := s.menu.State()
	if len(st.Result) > 0 || st.IsLoading() {
		return nil
	}
	call, err := s.menu.Trigger(struct{}{})
	if err != nil {
		logging.Get(logging.CategoryNavigation).Debug("menu load skipped: %v", err)
		return nil
	}
	return func(ctx context.Context) { call(ctx) }
}

func task[T any](call flow.Call[T], err error) (Task, error) {
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) { call(ctx) }, nil
}
