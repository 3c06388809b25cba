package core

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/aegisdeck/widgets"
)

// sidebarWidth is the navigation column; it is dropped below minWidthForSidebar.
const (
	sidebarWidth       = 24
	minWidthForSidebar = 72
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := renderHeader(m)
	status := RenderStatusBar(m)
	footer := RenderFooter(m)
	available := m.height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(footer)
	if available < 0 {
		available = 0
	}
	bodyHeight := available
	var body string
	if bodyHeight > 0 {
		body = m.renderBody(max(1, m.width), bodyHeight)
	}
	if top := m.screens.Top(); top != nil && bodyHeight > 0 {
		popup := widgets.Popup{Title: top.Title(), Body: top.View(max(20, m.width-16), max(6, bodyHeight-8))}
		body = popup.Over(body, max(1, m.width), bodyHeight)
	}
	body = fitHeight(body, bodyHeight)
	main := strings.TrimSuffix(strings.Join([]string{header, status, body}, "\n"), "\n")
	main = fitHeight(main, lipgloss.Height(header)+lipgloss.Height(status)+available)
	view := strings.Join([]string{main, footer}, "\n")
	view = fitHeight(view, max(1, m.height))
	return appStyle.Width(max(1, m.width)).MaxWidth(max(1, m.width)).Render(view)
}

func (m Model) renderBody(width, height int) string {
	panel := widgets.Func(func(w, h int) string { return m.RenderActive(w, h) })
	if width < minWidthForSidebar {
		return panel.Render(width, height)
	}
	return widgets.HStack{
		Widgets: []widgets.Widget{m.sidebar(), panel},
		Ratios:  []float64{float64(sidebarWidth), float64(width - sidebarWidth - 1)},
		Gap:     1,
	}.Render(width, height)
}

func (m Model) sidebar() widgets.Menu {
	items := make([]widgets.MenuItem, 0, moduleCount)
	for _, id := range Modules() {
		items = append(items, widgets.MenuItem{
			Key:    id.Key(),
			Label:  id.Title(),
			Group:  id.Group(),
			Active: id == m.activeID,
		})
	}
	return widgets.Menu{Title: m.appName, Items: items, Footer: "g go to · ctrl+k commands"}
}

func renderHeader(m Model) string {
	left := headerApp.Render(m.appName) + headerMeta.Render(" │ ") + headerModule.Render(m.activeID.Title())
	right := m.renderBattery()
	if m.showClock {
		right = headerMeta.Render("Time: "+m.clock.Format("15:04")) + headerMeta.Render("  ") + right
	}
	leftW := ansi.StringWidth(left)
	rightW := ansi.StringWidth(right)
	gap := 1
	if leftW+rightW+1 < m.width {
		gap = m.width - leftW - rightW
	}
	return renderBar(headerBar, max(1, m.width), left+headerMeta.Render(strings.Repeat(" ", gap))+right, colorMantle)
}

func (m Model) renderBattery() string {
	text := fmt.Sprintf("Battery: %d%%", m.battery)
	if m.battery <= 20 {
		return batteryLow.Render(text)
	}
	return headerMeta.Render(text)
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
