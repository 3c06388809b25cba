package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is a titled block used for feature tiles and info panels.
type Card struct {
	Title    string
	Subtitle string
	Body     string
	Selected bool
}

func (c Card) Render(width, height int) string {
	if width < 4 || height < 3 {
		return ""
	}
	border := colorBorder
	if c.Selected {
		border = colorAccent
	}
	head := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(c.Title)
	parts := []string{head}
	if strings.TrimSpace(c.Subtitle) != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorText).Bold(true).Render(c.Subtitle))
	}
	if strings.TrimSpace(c.Body) != "" {
		wrapped := lipgloss.NewStyle().Width(max(1, width-4)).Foreground(colorMuted).Render(c.Body)
		parts = append(parts, wrapped)
	}
	content := strings.Join(fitLines(strings.Join(parts, "\n"), height-2), "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Render(content)
}

// Banner is a one-off colored notice (warnings, success messages).
type Banner struct {
	Text string
	Kind BannerKind
}

type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerWarning
)

func (b Banner) Render(width, height int) string {
	if width < 4 || height < 1 || strings.TrimSpace(b.Text) == "" {
		return ""
	}
	fg := colorAccent
	switch b.Kind {
	case BannerSuccess:
		fg = colorGood
	case BannerWarning:
		fg = colorWarn
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(fg).
		Foreground(fg).
		Padding(0, 1).
		Width(width - 2).
		Render(b.Text)
}
