package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Table renders aligned columns with an optional highlighted row.
type Table struct {
	Headers []string
	Rows    [][]string
	// Selected is the highlighted row index, -1 for none.
	Selected int
	// Empty is shown instead of rows when there are none.
	Empty string
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "No data"
	}
	widths := t.columnWidths(width)
	head := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	sel := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	lines := []string{head.Render(t.line(t.Headers, widths, "  "))}
	if len(t.Rows) == 0 {
		empty := t.Empty
		if empty == "" {
			empty = "No rows"
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(colorMuted).Render(empty))
		return strings.Join(lines, "\n")
	}

	// keep the selection visible when rows overflow
	start := 0
	visible := height - 1
	if visible > 0 && t.Selected >= visible {
		start = t.Selected - visible + 1
	}
	for i := start; i < len(t.Rows) && len(lines) < height; i++ {
		if i == t.Selected {
			lines = append(lines, sel.Render(t.line(t.Rows[i], widths, "▶ ")))
			continue
		}
		lines = append(lines, t.line(t.Rows[i], widths, "  "))
	}
	return strings.Join(lines, "\n")
}

func (t Table) line(cells []string, widths []int, prefix string) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = padRight(ansi.Truncate(cell, widths[i], "…"), widths[i])
	}
	return prefix + strings.Join(parts, " │ ")
}

// columnWidths sizes each column to its widest cell, then shrinks the widest
// columns until the row fits.
func (t Table) columnWidths(width int) []int {
	n := len(t.Headers)
	widths := make([]int, n)
	for i, h := range t.Headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < n && i < len(row); i++ {
			widths[i] = max(widths[i], ansi.StringWidth(row[i]))
		}
	}
	budget := width - 2 - 3*(n-1)
	for total(widths) > budget {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 3 {
			break
		}
		widths[widest]--
	}
	return widths
}

func total(ws []int) int {
	sum := 0
	for _, w := range ws {
		sum += w
	}
	return sum
}
