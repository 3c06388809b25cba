package core

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil
	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)
	case ModuleSelectMsg:
		return m, m.SelectModule(msg.ID)
	case clockTickMsg:
		m.clock = msg.at
		return m, clockTick()
	case batteryTickMsg:
		m.battery = max(batteryFloor, m.battery-m.engine.IntN(5))
		return m, batteryTick()
	case spinner.TickMsg:
		if busy, ok := m.active.(BusyReporter); !ok || !busy.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case PanelMsg:
		id, gen := msg.Target()
		if m.active == nil || id != m.activeID || gen != m.generation {
			m.logger.Debug("dropping stale panel message",
				zap.String("module", id.Slug()),
				zap.Uint64("generation", gen),
				zap.Uint64("current", m.generation))
			return m, nil
		}
		return m, m.active.Update(&m, msg)
	case tea.KeyMsg:
		return m.routeKey(msg)
	}

	if top := m.screens.Top(); top != nil {
		return m.updateScreen(top, msg)
	}
	if m.active != nil {
		return m, m.active.Update(&m, msg)
	}
	return m, nil
}

func (m Model) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		m.unmountActive()
		return m, tea.Quit
	}
	if top := m.screens.Top(); top != nil {
		return m.updateScreen(top, msg)
	}
	if c, ok := m.active.(InputCapturer); ok && c.Capturing() {
		return m, m.active.Update(&m, msg)
	}

	scope := m.ActiveScope()
	switch {
	case m.keys.IsAction(msg, "quit", scope):
		m.quitting = true
		m.unmountActive()
		return m, tea.Quit
	case m.keys.IsAction(msg, "open-command-palette", scope) && m.OpenCommandModal != nil:
		m.screens.Push(m.OpenCommandModal(&m, scope))
		return m, nil
	case m.keys.IsAction(msg, "open-module-picker", scope) && m.OpenModulePicker != nil:
		m.screens.Push(m.OpenModulePicker(&m))
		return m, nil
	case m.keys.IsAction(msg, "next-module", scope):
		return m, m.SelectModule(m.activeID.Next(1))
	case m.keys.IsAction(msg, "prev-module", scope):
		return m, m.SelectModule(m.activeID.Next(-1))
	}
	for _, id := range Modules() {
		if m.keys.IsAction(msg, "goto-"+id.Slug(), scope) {
			return m, m.SelectModule(id)
		}
	}
	if m.active != nil {
		return m, m.active.Update(&m, msg)
	}
	return m, nil
}

func (m Model) updateScreen(top Screen, msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, pop := top.Update(msg)
	if pop {
		m.screens.Pop()
		return m, cmd
	}
	m.screens.ReplaceTop(next)
	return m, cmd
}
