package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders static rows such as a forecast or a calorie breakdown.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  []string // optional summary row, e.g. totals

	// RightAlign marks numeric columns by index.
	RightAlign map[int]bool
}

// NewTable creates a Table with the given title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:      title,
		Headers:    headers,
		RightAlign: make(map[int]bool),
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table using the provided styles. An empty table renders
// nothing.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	sep := styles.Muted.Render(" │ ")
	line := func(row []string, base lipgloss.Style) string {
		cells := make([]string, len(widths))
		for i := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			align := lipgloss.Left
			if t.RightAlign[i] {
				align = lipgloss.Right
			}
			cells[i] = base.Width(widths[i]).Align(align).Render(cell)
		}
		return strings.Join(cells, sep)
	}

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 3 * (len(widths) - 1)
	rule := styles.Divider.Render(strings.Repeat("─", total))

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	sb.WriteString(line(t.Headers, styles.Bold))
	sb.WriteString("\n" + rule + "\n")
	for _, row := range t.Rows {
		sb.WriteString(line(row, styles.Body))
		sb.WriteString("\n")
	}
	if len(t.Footer) > 0 {
		sb.WriteString(rule + "\n")
		sb.WriteString(line(t.Footer, styles.Bold))
		sb.WriteString("\n")
	}
	return sb.String()
}
