package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuItem is one navigation destination.
type MenuItem struct {
	Key    string
	Label  string
	Group  string
	Active bool
}

// Menu is a vertical navigation list grouped by section.
type Menu struct {
	Title  string
	Items  []MenuItem
	Footer string
}

func (m Menu) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	group := lipgloss.NewStyle().Foreground(colorBorder)
	key := lipgloss.NewStyle().Foreground(colorMuted)
	active := lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(colorAccent).Bold(true)

	lines := []string{title.Render(m.Title), ""}
	lastGroup := ""
	for _, it := range m.Items {
		if it.Group != "" && it.Group != lastGroup {
			if lastGroup != "" {
				lines = append(lines, "")
			}
			lines = append(lines, group.Render(strings.ToUpper(it.Group)))
			lastGroup = it.Group
		}
		row := padRight(" "+it.Label, max(1, width-4))
		if it.Active {
			lines = append(lines, key.Render(it.Key)+" "+active.Render(row))
			continue
		}
		lines = append(lines, key.Render(it.Key)+" "+row)
	}
	out := fitLines(strings.Join(lines, "\n"), height)
	if m.Footer != "" && height > len(m.Items)+4 {
		out[height-1] = group.Render(m.Footer)
	}
	return strings.Join(out, "\n")
}
