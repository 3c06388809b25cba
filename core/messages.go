package core

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type StatusMsg struct {
	Text  string
	IsErr bool
}

type PushScreenMsg struct {
	Screen Screen
}

type CommandExecuteMsg struct {
	CommandID string
}

// ModuleSelectMsg asks the router to switch modules.
type ModuleSelectMsg struct {
	ID ModuleID
}

type clockTickMsg struct{ at time.Time }

type batteryTickMsg struct{}

const (
	clockInterval   = time.Second
	batteryInterval = 30 * time.Second
	batteryFloor    = 10
)

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// SelectModuleCmd switches modules from inside a command or screen.
func SelectModuleCmd(id ModuleID) tea.Cmd {
	return func() tea.Msg { return ModuleSelectMsg{ID: id} }
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockTickMsg{at: t} })
}

func batteryTick() tea.Cmd {
	return tea.Tick(batteryInterval, func(time.Time) tea.Msg { return batteryTickMsg{} })
}
