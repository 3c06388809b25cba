package core

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// footerHints turns the visible bindings of the current scope into help
// entries, one per key and description pair.
func footerHints(m Model) []key.Binding {
	bindings := m.keys.BindingsForScope(m.ActiveScope())
	hints := make([]key.Binding, 0, len(bindings))
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 || b.Hidden {
			continue
		}
		id := b.Keys[0] + "\x00" + b.Description
		if seen[id] {
			continue
		}
		seen[id] = true
		hints = append(hints, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description)))
	}
	return hints
}

func RenderFooter(m Model) string {
	width := max(1, m.width)
	hints := footerHints(m)
	if len(hints) == 0 {
		return renderBar(footerStyle, width, footerDescStyle.Render("No shortcuts"), colorMantle)
	}
	h := help.New()
	h.Width = width
	h.ShortSeparator = footerSepStyle.Render("  ")
	h.Ellipsis = footerDescStyle.Render("…")
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = footerDescStyle
	h.Styles.ShortSeparator = footerSepStyle
	return renderBar(footerStyle, width, h.ShortHelpView(hints), colorMantle)
}

func RenderStatusBar(m Model) string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	style := statusBarStyle
	if m.statusErr {
		style = statusErrBarStyle
	}
	return renderBar(style, max(1, m.width), msg, colorSurface0)
}

// renderBar draws one full-width line on bg.
func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "")
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return style.Background(bg).Width(width).MaxWidth(width).Render(line)
}

// ClipHeight keeps the first height lines of s.
func ClipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.SplitN(s, "\n", height+1)
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// TrimToWidth cuts every line of s to width cells.
func TrimToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], width, "")
	}
	return strings.Join(lines, "\n")
}
