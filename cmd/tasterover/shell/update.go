package shell

import (
	"errors"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tasterover/internal/flow"
	"tasterover/internal/logging"
	"tasterover/internal/session"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.sess.Screen() == session.MenuDetail {
			m.refreshDetail()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case flowSettledMsg:
		logging.UIDebug("%s settled", msg.flow)
		var cmd tea.Cmd
		if msg.flow == "menu" {
			cmd = m.syncMenu()
			if m.sess.Screen() == session.MenuDetail {
				m.refreshDetail()
			}
		}
		return m, cmd

	case navErrMsg:
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		m.status = ""

		switch m.sess.Screen() {
		case session.Home:
			return m.updateHome(msg)
		case session.Weather:
			return m.updateWeather(msg)
		case session.Nutrition:
			return m.updateNutrition(msg)
		case session.Menu:
			return m.updateMenu(msg)
		case session.MenuDetail:
			return m.updateDetail(msg)
		}
	}

	return m.forward(msg)
}

// forward hands non-key messages (cursor blink, list filtering) to the
// active screen's component.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.sess.Screen() {
	case session.Weather:
		m.postcode, cmd = m.postcode.Update(msg)
	case session.Nutrition:
		m.ingredients, cmd = m.ingredients.Update(msg)
	case session.Menu:
		m.menu, cmd = m.menu.Update(msg)
	case session.MenuDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k", "left", "h", "shift+tab":
		m.homeCursor = (m.homeCursor + len(homeEntries) - 1) % len(homeEntries)
	case "down", "j", "right", "l", "tab":
		m.homeCursor = (m.homeCursor + 1) % len(homeEntries)
	case "enter", " ":
		return m.open(homeEntries[m.homeCursor].screen)
	case "1", "w":
		return m.open(session.Weather)
	case "2", "n":
		return m.open(session.Nutrition)
	case "3", "m":
		return m.open(session.Menu)
	}
	return m, nil
}

// open leaves Home for one of the feature screens.
func (m Model) open(to session.Screen) (tea.Model, tea.Cmd) {
	task, err := m.sess.Navigate(to)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	switch to {
	case session.Weather:
		cmd = m.postcode.Focus()
	case session.Nutrition:
		cmd = m.ingredients.Focus()
	case session.Menu:
		cmd = tea.Batch(m.syncMenu(), m.run(task, "menu"))
	}
	return m, cmd
}

// back returns to the parent screen and clears the input of the screen
// being left.
func (m Model) back() (tea.Model, tea.Cmd) {
	from := m.sess.Screen()
	task, err := m.sess.Back()
	if err != nil {
		return m, func() tea.Msg { return navErrMsg{err: err} }
	}

	var cmd tea.Cmd
	switch from {
	case session.Weather:
		m.postcode.Reset()
		m.postcode.Blur()
	case session.Nutrition:
		m.ingredients.Reset()
		m.ingredients.Blur()
	case session.MenuDetail:
		// Returning to an empty menu starts a load that must be run.
		m.detail.SetContent("")
		cmd = tea.Batch(m.syncMenu(), m.run(task, "menu"))
	}
	return m, cmd
}

func (m Model) updateWeather(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.back()
	case tea.KeyEnter:
		if m.sess.WeatherFlow().State().IsLoading() {
			return m, nil
		}
		task, err := m.sess.SubmitWeather(m.postcode.Value())
		return m, m.submitted(task, err, "weather")
	}

	var cmd tea.Cmd
	m.postcode, cmd = m.postcode.Update(msg)
	return m, cmd
}

func (m Model) updateNutrition(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.back()
	case "ctrl+s":
		if m.sess.NutritionFlow().State().IsLoading() {
			return m, nil
		}
		task, err := m.sess.SubmitNutrition(m.ingredients.Value())
		return m, m.submitted(task, err, "nutrition")
	}

	var cmd tea.Cmd
	m.ingredients, cmd = m.ingredients.Update(msg)
	return m, cmd
}

// submitted turns the result of a Submit call into a command. Validation
// failures are already visible as the flow's state.
func (m Model) submitted(task session.Task, err error, name string) tea.Cmd {
	if err != nil {
		if errors.Is(err, flow.ErrInFlight) {
			logging.UIDebug("%s submit ignored: in flight", name)
		}
		return nil
	}
	return m.run(task, name)
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		if m.menu.FilterState() == list.FilterApplied {
			m.menu.ResetFilter()
			return m, nil
		}
		return m.back()
	case "r":
		task, err := m.sess.ReloadMenu()
		if err != nil {
			return m, nil
		}
		cmd := tea.Batch(m.syncMenu(), m.run(task, "menu"))
		return m, cmd
	case "enter":
		entry, ok := m.menu.SelectedItem().(menuEntry)
		if !ok {
			return m, nil
		}
		if err := m.sess.OpenDetail(entry.item.Key); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.refreshDetail()
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		return m.back()
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// syncMenu copies the session's cached menu into the list.
func (m *Model) syncMenu() tea.Cmd {
	return m.menu.SetItems(toEntries(m.sess.MenuItems()))
}

// refreshDetail renders the selected item, looked up in the current menu.
func (m *Model) refreshDetail() {
	item, ok := m.sess.Selected()
	if !ok {
		m.detail.SetContent(m.styles.Muted.Render("This item is no longer available on the menu."))
		return
	}

	md := productMarkdown(item)
	content := md
	if m.renderer != nil {
		if out, err := m.renderer.Render(md); err == nil {
			content = out
		}
	}
	m.detail.SetContent(content)
	m.detail.GotoTop()
}
