package core

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89dceb"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorWarn     lipgloss.Color = "#f9e2af"
	colorError    lipgloss.Color = "#f38ba8"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerBar    = lipgloss.NewStyle().Background(colorMantle).Foreground(colorText)
	headerApp    = headerBar.Foreground(colorAccent).Bold(true)
	headerModule = headerBar.Bold(true)
	headerMeta   = headerBar.Foreground(colorMuted)
	batteryLow   = headerBar.Foreground(colorWarn)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface0)
	statusErrBarStyle = statusBarStyle.Foreground(colorError)

	footerStyle     = lipgloss.NewStyle().Background(colorMantle)
	footerKeyStyle  = footerStyle.Foreground(colorAccent).Bold(true)
	footerDescStyle = footerStyle.Foreground(colorMuted)
	footerSepStyle  = footerStyle.Foreground(colorBorder)
)
