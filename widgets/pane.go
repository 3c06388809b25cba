package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	colorText   = lipgloss.Color("#cdd6f4")
	colorMuted  = lipgloss.Color("#a6adc8")
	colorBorder = lipgloss.Color("#6c7086")
	colorAccent = lipgloss.Color("#89dceb")
	colorBusy   = lipgloss.Color("#f9e2af")
	colorGood   = lipgloss.Color("#a6e3a1")
	colorWarn   = lipgloss.Color("#fab387")
)

// Pane draws content inside a rounded border with the title set into the top edge.
type Pane struct {
	Title   string
	Content string
	Active  bool
	Busy    bool
	// Hint is right-aligned into the bottom edge.
	Hint string
}

func (p Pane) Render(width, height int) string {
	if width < 4 || height < 3 {
		return ""
	}
	border := colorBorder
	switch {
	case p.Busy:
		border = colorBusy
	case p.Active:
		border = colorAccent
	}
	edge := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(colorMuted)

	inner := width - 2
	top := edge.Render("╭") + edgeLabel(edge, titleStyle, p.Title, inner, false) + edge.Render("╮")
	bottom := edge.Render("╰") + edgeLabel(edge, hintStyle, p.Hint, inner, true) + edge.Render("╯")

	body := fitLines(p.Content, height-2)
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for _, line := range body {
		rows = append(rows, edge.Render("│")+" "+padRight(line, inner-2)+" "+edge.Render("│"))
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}

func edgeLabel(edge, style lipgloss.Style, label string, width int, alignRight bool) string {
	label = strings.TrimSpace(label)
	if label == "" || width < 5 {
		return edge.Render(strings.Repeat("─", max(0, width)))
	}
	text := " " + ansi.Truncate(label, width-4, "…") + " "
	dashes := max(0, width-ansi.StringWidth(text))
	lead := 1
	if alignRight {
		lead = max(0, dashes-1)
	}
	lead = min(lead, dashes)
	return edge.Render(strings.Repeat("─", lead)) + style.Render(text) + edge.Render(strings.Repeat("─", dashes-lead))
}
