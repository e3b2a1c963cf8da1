package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasterover/cmd/tasterover/ui"
	"tasterover/internal/api"
	"tasterover/internal/failure"
	"tasterover/internal/flow"
	"tasterover/internal/session"
)

// View renders the active screen.
func (m Model) View() string {
	screen := m.sess.Screen()

	var body string
	switch screen {
	case session.Home:
		body = m.homeView()
	case session.Weather:
		body = m.weatherView()
	case session.Nutrition:
		body = m.nutritionView()
	case session.Menu:
		body = m.menuView()
	case session.MenuDetail:
		body = m.detailView()
	}

	parts := []string{m.headerView(screen), m.styles.Content.Render(body)}
	if m.status != "" {
		parts = append(parts, m.styles.Warning.Render(m.status))
	}
	parts = append(parts, m.styles.Footer.Render(footerHelp(screen)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) headerView(screen session.Screen) string {
	title := map[session.Screen]string{
		session.Home:       "Taste Rover",
		session.Weather:    "Taste Rover · Weather",
		session.Nutrition:  "Taste Rover · Nutrition",
		session.Menu:       "Taste Rover · McDonald's",
		session.MenuDetail: "Taste Rover · McDonald's",
	}[screen]
	return m.styles.Header.Width(m.width).Render(title)
}

func footerHelp(screen session.Screen) string {
	switch screen {
	case session.Home:
		return "↑/↓ choose • enter open • 1/2/3 jump • q quit"
	case session.Weather:
		return "enter get forecast • esc back to home"
	case session.Nutrition:
		return "ctrl+s calculate • esc back to home"
	case session.Menu:
		return "↑/↓ browse • / filter • enter details • r reload • esc back to home"
	case session.MenuDetail:
		return "↑/↓ scroll • esc back to menu"
	}
	return ""
}

func (m Model) homeView() string {
	cards := make([]string, len(homeEntries))
	for i, e := range homeEntries {
		style := m.styles.Card
		if i == m.homeCursor {
			style = m.styles.CardSelected
		}
		cards[i] = style.Render(fmt.Sprintf("%s\n%s\n%s", e.icon, e.title, m.styles.Muted.Render(e.blurb)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if m.width > 0 && lipgloss.Width(row) > m.width {
		row = lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinVertical(lipgloss.Center, ui.Logo(m.styles), "", row)
}

// failureView renders a Failed state. Quota failures get the warning style.
func (m Model) failureView(kind failure.Kind, msg string) string {
	if kind == failure.QuotaExhausted {
		return m.styles.Warning.Render(msg)
	}
	return m.styles.Error.Render(msg)
}

func (m Model) button(label string, loading bool) string {
	if loading {
		return m.styles.ButtonOff.Render(label)
	}
	return m.styles.Button.Render(label)
}

func (m Model) weatherView() string {
	st := m.sess.WeatherFlow().State()

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("UK Weather Forecast"))
	sb.WriteString("\n\n")
	sb.WriteString(m.postcode.View())
	sb.WriteString("\n\n")

	switch st.Status {
	case flow.Loading:
		sb.WriteString(m.button("Loading...", true))
		sb.WriteString("\n\n" + m.spinner.View() + " Fetching forecast...")
	case flow.Failed:
		sb.WriteString(m.button("Get Forecast", false))
		sb.WriteString("\n\n" + m.failureView(st.Kind, st.Message))
	case flow.Success:
		sb.WriteString(m.button("Get Forecast", false))
		sb.WriteString("\n\n" + m.weatherResult(st))
	default:
		sb.WriteString(m.button("Get Forecast", false))
	}
	return sb.String()
}

func (m Model) weatherResult(st flow.State[api.WeatherResult]) string {
	w := st.Result
	now := m.now()

	current := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Muted.Render("Current weather · "+w.Postcode),
		m.styles.Big.Render(ui.WeatherIcon(w.Current.Condition)+"  "+ui.Temp(w.Current.Temperature)),
		m.styles.Body.Render(w.Current.Condition),
	)

	table := ui.NewTable(fmt.Sprintf("%d-Day Forecast", len(w.Forecast)), "Day", "", "Avg", "Conditions")
	table.RightAlign[2] = true
	for _, d := range w.Forecast {
		table.AddRow(ui.FormatDate(d.Date, now), ui.WeatherIcon(d.Mainly), ui.Temp(d.AvgTemp), d.Mainly)
	}
	return current + "\n\n" + table.View(m.styles)
}

func (m Model) nutritionView() string {
	st := m.sess.NutritionFlow().State()

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Calorie Calculator"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtitle.Render("Enter ingredients, one per line"))
	sb.WriteString("\n\n")
	sb.WriteString(m.ingredients.View())
	sb.WriteString("\n\n")

	switch st.Status {
	case flow.Loading:
		sb.WriteString(m.button("Calculating...", true))
		sb.WriteString("\n\n" + m.spinner.View() + " Estimating calories...")
	case flow.Failed:
		sb.WriteString(m.button("Calculate Calories", false))
		sb.WriteString("\n\n" + m.failureView(st.Kind, st.Message))
	case flow.Success:
		sb.WriteString(m.button("Calculate Calories", false))
		sb.WriteString("\n\n" + m.nutritionResult(st))
	default:
		sb.WriteString(m.button("Calculate Calories", false))
	}
	return sb.String()
}

func (m Model) nutritionResult(st flow.State[api.NutritionResult]) string {
	n := st.Result
	table := ui.NewTable("Breakdown", "Ingredient", "Amount", "kcal", "Notes")
	table.RightAlign[2] = true
	for _, it := range n.Items {
		table.AddRow(it.Ingredient, it.AssumedAmount, fmt.Sprintf("%d", it.CaloriesKcal), it.Notes)
	}
	table.Footer = []string{"Total", "", fmt.Sprintf("%d", n.TotalCaloriesKcal), ""}

	total := m.styles.Big.Render(fmt.Sprintf("%d kcal", n.TotalCaloriesKcal))
	return m.styles.Muted.Render("Total calories") + "\n" + total + "\n\n" + table.View(m.styles)
}

func (m Model) menuView() string {
	st := m.sess.MenuFlow().State()
	items := m.sess.MenuItems()

	var sb strings.Builder
	sb.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Browse %d products", len(items))))
	sb.WriteString("\n\n")

	switch st.Status {
	case flow.Loading:
		sb.WriteString(m.spinner.View() + " Loading menu...")
	case flow.Failed:
		sb.WriteString(m.failureView(st.Kind, st.Message))
	}
	if len(items) > 0 {
		sb.WriteString(m.menu.View())
	}
	return sb.String()
}

func (m Model) detailView() string {
	return m.detail.View()
}
