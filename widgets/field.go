package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled value row: a form input, a key display or a readout.
type Field struct {
	Label string
	Value string
	// Trailing is shown after the value (toggle state, copied marker).
	Trailing string
	Focused  bool
	Invalid  bool
}

// Fields stacks field rows, two lines each.
type Fields []Field

func (fs Fields) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(colorMuted)
	focusLabel := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	badLabel := lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	trail := lipgloss.NewStyle().Foreground(colorGood)

	lines := make([]string, 0, len(fs)*2)
	for _, f := range fs {
		style, marker := label, "  "
		switch {
		case f.Invalid:
			style, marker = badLabel, "! "
		case f.Focused:
			style, marker = focusLabel, "▸ "
		}
		lines = append(lines, marker+style.Render(f.Label))
		value := "  " + f.Value
		if strings.TrimSpace(f.Trailing) != "" {
			value += "  " + trail.Render(f.Trailing)
		}
		lines = append(lines, value)
	}
	return strings.Join(fitLines(strings.Join(lines, "\n"), height), "\n")
}

// Choice renders a one-of selector like "arm [x86] x64 mips".
func Choice(options []string, selected int) string {
	parts := make([]string, len(options))
	on := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	for i, o := range options {
		if i == selected {
			parts[i] = on.Render("[" + o + "]")
			continue
		}
		parts[i] = " " + o + " "
	}
	return strings.Join(parts, " ")
}
