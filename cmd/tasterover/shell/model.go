// Package shell is the terminal front end: a Bubble Tea program that renders
// the session's active screen and turns key presses into session operations.
package shell

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"tasterover/cmd/tasterover/ui"
	"tasterover/internal/session"
)

// Options configures the shell.
type Options struct {
	Theme    string // auto, light, dark
	WordWrap int    // detail screen markdown width
	Now      func() time.Time
}

// homeEntries are the cards on the home screen, in display order.
var homeEntries = []struct {
	screen session.Screen
	icon   string
	title  string
	blurb  string
}{
	{session.Weather, "🌤️", "Weather", "UK forecast"},
	{session.Nutrition, "🥗", "Nutrition", "Calorie calculator"},
	{session.Menu, "🍔", "McDonald's", "Menu & nutrition"},
}

// Model is the Bubble Tea model for the whole client.
type Model struct {
	ctx      context.Context
	sess     *session.Session
	styles   ui.Styles
	renderer *glamour.TermRenderer
	now      func() time.Time

	homeCursor  int
	postcode    textinput.Model
	ingredients textarea.Model
	menu        list.Model
	detail      viewport.Model
	spinner     spinner.Model

	width  int
	height int
	status string // one-line notice, cleared on the next key press
}

// New builds the model around sess. ctx bounds every request the shell
// starts.
func New(ctx context.Context, sess *session.Session, opts Options) Model {
	styles := ui.NewStyles(ui.ThemeFor(opts.Theme))
	if opts.WordWrap <= 0 {
		opts.WordWrap = 80
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "e.g. SW1A 1AA"
	ti.Width = 20
	ti.Prompt = "Postcode › "

	ta := textarea.New()
	ta.Placeholder = "One ingredient per line, e.g.\n2 eggs\n100g chicken breast"
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(8)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(opts.WordWrap),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(opts.WordWrap),
		)
	}

	return Model{
		ctx:         ctx,
		sess:        sess,
		styles:      styles,
		renderer:    renderer,
		now:         opts.Now,
		postcode:    ti,
		ingredients: ta,
		menu:        newMenuList(80, 20),
		detail:      viewport.New(80, 20),
		spinner:     sp,
		width:       80,
		height:      24,
	}
}

// Init starts the spinner; flows stay Idle until the user acts.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Session exposes the underlying session.
func (m Model) Session() *session.Session {
	return m.sess
}

// run wraps a session task as a command reporting back with flowSettledMsg.
func (m Model) run(task session.Task, flow string) tea.Cmd {
	if task == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		task(ctx)
		return flowSettledMsg{flow: flow}
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	body := max(h-6, 5)
	m.menu.SetSize(w-4, body-2)
	m.detail.Width = w - 4
	m.detail.Height = body
	m.ingredients.SetWidth(min(w-6, 80))
}
