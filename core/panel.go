package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/widgets"
)

// Panel is one module's UI. A fresh panel is built every time its module is
// selected and discarded when another module takes over, so all panel state is
// local to one activation.
type Panel interface {
	ID() ModuleID
	Title() string
	Scope() string
	// Mount runs when the panel becomes active.
	Mount(m *Model) tea.Cmd
	// Unmount runs before the panel is discarded. Anything still in flight
	// for it is dropped when it arrives.
	Unmount(m *Model)
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

// InputCapturer is implemented by panels with text fields. While Capturing
// reports true every key except ctrl+c goes to the panel.
type InputCapturer interface {
	Capturing() bool
}

// BusyReporter keeps the shared spinner ticking while Busy reports true.
type BusyReporter interface {
	Busy() bool
}

// CommandProvider contributes palette commands while the panel is mounted.
type CommandProvider interface {
	Commands() []Command
}

// PanelSpec registers the factory for one module.
type PanelSpec struct {
	ID  ModuleID
	New func() Panel
}

// PanelMsg is a message addressed to one activation of a module. The router
// drops it when that activation is gone.
type PanelMsg interface {
	Target() (ModuleID, uint64)
}
