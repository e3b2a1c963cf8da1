package shell

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasterover/internal/api"
	"tasterover/internal/failure"
	"tasterover/internal/session"
)

type stubBackend struct {
	weatherCalls int
	menuCalls    int
	nutErr       error
	menuErr      error
}

func (b *stubBackend) Weather(ctx context.Context, postcode string) (api.WeatherResult, error) {
	b.weatherCalls++
	return api.WeatherResult{
		Postcode: postcode,
		Current:  api.Observation{Temperature: 12.34, Condition: "mainly rain"},
		Forecast: []api.ForecastDay{
			{Date: "2024-03-01", AvgTemp: 11, Mainly: "mainly rain"},
			{Date: "2024-03-02", AvgTemp: 13.5, Mainly: "mainly sun"},
		},
	}, nil
}

func (b *stubBackend) Nutrition(ctx context.Context, ingredients []string) (api.NutritionResult, error) {
	if b.nutErr != nil {
		return api.NutritionResult{}, b.nutErr
	}
	return api.NutritionResult{
		Items:             []api.NutritionItem{{Ingredient: ingredients[0], AssumedAmount: "100g", CaloriesKcal: 165}},
		TotalCaloriesKcal: 165,
	}, nil
}

func (b *stubBackend) Menu(ctx context.Context) ([]api.MenuItem, error) {
	b.menuCalls++
	if b.menuErr != nil {
		return nil, b.menuErr
	}
	items := []api.MenuItem{
		{Name: "Big Mac", Price: "£4.99", Nutrition: api.NutritionFacts{EnergyKcal: 493}},
		{Name: "Fries", Allergens: "None"},
	}
	api.AssignKeys(items)
	return items, nil
}

const testAdmin = "admin@example.com"

func newTestModel(b *stubBackend) Model {
	sess := session.New(b, failure.AdminMessage(testAdmin))
	now := func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return New(context.Background(), sess, Options{Theme: "dark", Now: now})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs a command, giving up on ones that block (cursor blink, ticks).
func exec(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(200 * time.Millisecond):
		return nil, false
	}
}

// press sends one key and feeds the resulting flow messages back into the
// model until nothing is left.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(key(k))
	return drain(t, next, cmd)
}

func drain(t *testing.T, model tea.Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := exec(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case flowSettledMsg, navErrMsg:
			var next tea.Cmd
			model, next = model.Update(msg)
			queue = append(queue, next)
		}
	}
	m, ok := model.(Model)
	require.True(t, ok)
	return m
}

func TestHomeView(t *testing.T) {
	m := newTestModel(&stubBackend{})
	view := m.View()
	assert.Contains(t, view, "T A S T E   R O V E R")
	assert.Contains(t, view, "Weather")
	assert.Contains(t, view, "Nutrition")
	assert.Contains(t, view, "McDonald's")
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(&stubBackend{})
	_, cmd := m.Update(key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHomeCursorWraps(t *testing.T) {
	m := newTestModel(&stubBackend{})
	m = press(t, m, "k")
	assert.Equal(t, len(homeEntries)-1, m.homeCursor)
	m = press(t, m, "j")
	assert.Equal(t, 0, m.homeCursor)
}

func TestWeatherSubmitAndLeave(t *testing.T) {
	b := &stubBackend{}
	m := newTestModel(b)

	m = press(t, m, "w")
	require.Equal(t, session.Weather, m.sess.Screen())

	m = press(t, m, "SW1A 1AA")
	m = press(t, m, "enter")

	st := m.sess.WeatherFlow().State()
	require.True(t, st.IsSuccess())
	assert.Equal(t, 1, b.weatherCalls)
	assert.Equal(t, "SW1A 1AA", st.Result.Postcode)

	view := m.View()
	assert.Contains(t, view, "12.3°C")
	assert.Contains(t, view, "Today")
	assert.Contains(t, view, "Tomorrow")

	m = press(t, m, "esc")
	assert.Equal(t, session.Home, m.sess.Screen())
	assert.True(t, m.sess.WeatherFlow().State().IsIdle())
	assert.Empty(t, m.postcode.Value())
}

func TestWeatherEmptyPostcode(t *testing.T) {
	b := &stubBackend{}
	m := newTestModel(b)

	m = press(t, m, "w")
	m = press(t, m, "enter")

	st := m.sess.WeatherFlow().State()
	assert.True(t, st.IsFailed())
	assert.Equal(t, failure.Generic, st.Kind)
	assert.Equal(t, 0, b.weatherCalls)
	assert.Contains(t, m.View(), session.MsgEmptyPostcode)
}

func TestNutritionQuotaFailure(t *testing.T) {
	b := &stubBackend{nutErr: &api.DomainError{Op: "nutrition", Message: "insufficient_quota"}}
	m := newTestModel(b)

	m = press(t, m, "n")
	require.Equal(t, session.Nutrition, m.sess.Screen())
	m = press(t, m, "2 eggs")
	m = press(t, m, "ctrl+s")

	st := m.sess.NutritionFlow().State()
	require.True(t, st.IsFailed())
	assert.Equal(t, failure.QuotaExhausted, st.Kind)
	assert.Contains(t, m.View(), testAdmin)
}

func TestNutritionSuccess(t *testing.T) {
	m := newTestModel(&stubBackend{})

	m = press(t, m, "n")
	m = press(t, m, "chicken")
	m = press(t, m, "ctrl+s")

	require.True(t, m.sess.NutritionFlow().State().IsSuccess())
	view := m.View()
	assert.Contains(t, view, "165 kcal")
	assert.Contains(t, view, "chicken")
}

func TestMenuDetailRoundTrip(t *testing.T) {
	b := &stubBackend{}
	m := newTestModel(b)

	m = press(t, m, "3")
	require.Equal(t, session.Menu, m.sess.Screen())
	require.True(t, m.sess.MenuFlow().State().IsSuccess())
	assert.Len(t, m.menu.Items(), 2)
	assert.Contains(t, m.View(), "Browse 2 products")

	m = press(t, m, "enter")
	require.Equal(t, session.MenuDetail, m.sess.Screen())
	item, ok := m.sess.Selected()
	require.True(t, ok)
	assert.Equal(t, "Big Mac", item.Name)
	assert.NotEmpty(t, m.detail.View())

	m = press(t, m, "esc")
	assert.Equal(t, session.Menu, m.sess.Screen())
	assert.False(t, m.sess.HasSelection())

	m = press(t, m, "esc")
	m = press(t, m, "3")
	assert.Equal(t, 1, b.menuCalls, "menu is loaded once per session")

	m = press(t, m, "r")
	assert.Equal(t, 2, b.menuCalls)
	assert.True(t, m.sess.MenuFlow().State().IsSuccess())
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(&stubBackend{})
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	m = next.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 116, m.detail.Width)
}

func TestProductMarkdown(t *testing.T) {
	md := productMarkdown(api.MenuItem{
		Name:      "Fries",
		Allergens: "None",
		Nutrition: api.NutritionFacts{EnergyKcal: 337, Protein: 3.4},
	})
	assert.Contains(t, md, "# Fries")
	assert.Contains(t, md, "**see menu**")
	assert.Contains(t, md, "337 kcal")
	assert.Contains(t, md, "3.4g")
	assert.Contains(t, md, "Allergen Information")
	assert.NotContains(t, md, "## Ingredients")
}

func TestBackFromDetailRunsMenuLoad(t *testing.T) {
	b := &stubBackend{}
	m := newTestModel(b)

	m = press(t, m, "3")
	m = press(t, m, "enter")
	require.Equal(t, session.MenuDetail, m.sess.Screen())

	// The menu is reloaded underneath the detail view and fails.
	b.menuErr = &api.TransportError{Op: "menu", Status: 503}
	task, err := m.sess.ReloadMenu()
	require.NoError(t, err)
	task(context.Background())
	require.True(t, m.sess.MenuFlow().State().IsFailed())
	b.menuErr = nil

	m = press(t, m, "esc")
	assert.Equal(t, session.Menu, m.sess.Screen())
	assert.True(t, m.sess.MenuFlow().State().IsSuccess())
	assert.Equal(t, 3, b.menuCalls)
	assert.Len(t, m.menu.Items(), 2)

	m = press(t, m, "esc")
	m = press(t, m, "3")
	assert.Equal(t, 3, b.menuCalls, "loaded menu is not fetched again")
	assert.True(t, m.sess.MenuFlow().State().IsSuccess())
}

func TestPostcodeInputIsNotTruncated(t *testing.T) {
	b := &stubBackend{}
	m := newTestModel(b)

	long := "SW1A 1AA EXTRA CHARACTERS"
	m = press(t, m, "w")
	m = press(t, m, long)
	assert.Equal(t, long, m.postcode.Value())

	m = press(t, m, "enter")
	require.True(t, m.sess.WeatherFlow().State().IsSuccess())
	assert.Equal(t, long, m.sess.WeatherFlow().State().Result.Postcode)
}
