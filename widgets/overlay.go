package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Popup is a bordered card drawn centered over a base canvas.
type Popup struct {
	Title string
	Body  string
}

func (p Popup) card() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(p.Title)
	body := p.Body
	if strings.TrimSpace(p.Title) != "" {
		body = title + "\n\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Render(body)
}

// Over composites the popup onto base, keeping base rows the card does not cover.
func (p Popup) Over(base string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := fitLines(base, height)
	for i := range canvas {
		canvas[i] = padRight(canvas[i], width)
	}
	cardLines := strings.Split(p.card(), "\n")
	cardWidth := 0
	for _, line := range cardLines {
		cardWidth = max(cardWidth, ansi.StringWidth(line))
	}
	if cardWidth == 0 {
		return strings.Join(canvas, "\n")
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(cardLines))/2)
	for i, line := range cardLines {
		row := y + i
		if row >= height {
			break
		}
		left := padRight(ansi.Truncate(canvas[row], x, ""), x)
		mid := padRight(line, cardWidth)
		right := skipColumns(canvas[row], x+cardWidth)
		canvas[row] = ansi.Truncate(left+mid+right, width, "")
	}
	return strings.Join(canvas, "\n")
}

func skipColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}
