package core

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/aegisdeck/internal/sim"
)

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// Options configures a Model.
type Options struct {
	Panels   []PanelSpec
	Keys     *KeyRegistry
	Commands *CommandRegistry
	Logger   *zap.Logger
	// Engine drives the clock and the battery drain.
	Engine *sim.Engine
	// Initial is the module shown first, by slug or title.
	Initial   string
	MaskRune  rune
	ShowClock bool
	AppName   string

	OpenCommandModal func(m *Model, scope string) Screen
	OpenModulePicker func(m *Model) Screen
}

type Model struct {
	width     int
	height    int
	appName   string
	factories [moduleCount]func() Panel

	activeID   ModuleID
	active     Panel
	generation uint64
	baseCtx    context.Context
	mountCtx   context.Context
	unmount    context.CancelFunc

	screens   ScreenStack
	keys      *KeyRegistry
	commands  *CommandRegistry
	status    string
	statusErr bool
	quitting  bool
	spinner   spinner.Model
	logger    *zap.Logger
	engine    *sim.Engine
	maskRune  rune
	showClock bool
	clock     time.Time
	battery   int
	initCmd   tea.Cmd

	OpenCommandModal func(m *Model, scope string) Screen
	OpenModulePicker func(m *Model) Screen
}

// NewModel registers the panels and mounts the initial module. It panics when
// two specs claim the same module.
func NewModel(opts Options) Model {
	m := Model{
		appName:          opts.AppName,
		keys:             opts.Keys,
		commands:         opts.Commands,
		logger:           opts.Logger,
		engine:           opts.Engine,
		maskRune:         opts.MaskRune,
		showClock:        opts.ShowClock,
		status:           "Ready",
		battery:          100,
		width:            100,
		height:           32,
		baseCtx:          context.Background(),
		spinner:          spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		OpenCommandModal: opts.OpenCommandModal,
		OpenModulePicker: opts.OpenModulePicker,
	}
	if m.appName == "" {
		m.appName = "Aegis Deck"
	}
	if m.keys == nil {
		m.keys = NewKeyRegistry(nil)
	}
	if m.commands == nil {
		m.commands = NewCommandRegistry(nil)
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.engine == nil {
		m.engine = sim.New(0)
	}
	if m.maskRune == 0 {
		m.maskRune = DefaultMask
	}
	for _, spec := range opts.Panels {
		if !spec.ID.Valid() || spec.New == nil {
			panic(fmt.Sprintf("invalid panel spec for %v", spec.ID))
		}
		if m.factories[spec.ID] != nil {
			panic(fmt.Sprintf("duplicate panel for module %q", spec.ID.Slug()))
		}
		m.factories[spec.ID] = spec.New
	}
	m.commands.RegisterModules()
	m.mountCtx = m.baseCtx
	m.clock = m.engine.Now()
	m.initCmd = m.SelectModuleByName(opts.Initial)
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initCmd, batteryTick()}
	if m.showClock {
		cmds = append(cmds, clockTick())
	}
	return tea.Batch(cmds...)
}

// ActiveModule reports which module is on screen.
func (m Model) ActiveModule() ModuleID { return m.activeID }

// ActivePanel is the mounted panel, nil only when no factory exists at all.
func (m Model) ActivePanel() Panel { return m.active }

// Generation counts mounts; results addressed to an older one are dropped.
func (m Model) Generation() uint64 { return m.generation }

// SelectModule makes id the active module. Unknown ids fall back to Overview;
// reselecting the active module keeps the mounted panel as it is.
func (m *Model) SelectModule(id ModuleID) tea.Cmd {
	if !id.Valid() || m.factories[id] == nil {
		m.logger.Warn("unknown module, falling back", zap.Int("module", int(id)))
		id = Overview
	}
	if m.active != nil && m.activeID == id {
		return nil
	}
	m.unmountActive()
	factory := m.factories[id]
	if factory == nil {
		m.activeID = id
		return nil
	}
	m.generation++
	m.mountCtx, m.unmount = context.WithCancel(m.baseCtx)
	m.activeID = id
	m.active = factory()
	if provider, ok := m.active.(CommandProvider); ok {
		for _, c := range provider.Commands() {
			m.commands.Register(c)
		}
	}
	m.logger.Info("module selected", zap.String("module", id.Slug()), zap.Uint64("generation", m.generation))
	return m.active.Mount(m)
}

// SelectModuleByName resolves a slug, title or hot key. An unknown name shows
// Overview and suggests the closest module on the status bar.
func (m *Model) SelectModuleByName(name string) tea.Cmd {
	id, ok := ParseModuleID(name)
	cmd := m.SelectModule(id)
	if !ok && name != "" {
		text := fmt.Sprintf("Unknown module %q, showing %s", name, Overview.Title())
		if s, found := Suggest(name); found {
			text += fmt.Sprintf(" (did you mean %q?)", s)
		}
		m.SetStatus(text)
	}
	return cmd
}

func (m *Model) unmountActive() {
	if m.active == nil {
		return
	}
	m.active.Unmount(m)
	if provider, ok := m.active.(CommandProvider); ok {
		for _, c := range provider.Commands() {
			m.commands.Unregister(c.ID)
		}
	}
	if m.unmount != nil {
		m.unmount()
	}
	m.logger.Debug("module unmounted", zap.String("module", m.activeID.Slug()), zap.Uint64("generation", m.generation))
	m.active = nil
}

// RenderActive draws the active panel into a width x height box.
func (m *Model) RenderActive(width, height int) string {
	if m.active == nil {
		return ""
	}
	return m.active.Build(m).Render(width, height)
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.logger.Warn("status error", zap.Error(err))
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) Status() (string, bool) { return m.status, m.statusErr }

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if m.active == nil {
		return "app"
	}
	return m.active.Scope()
}

// Is reports whether msg is bound to action in the current scope.
func (m Model) Is(msg tea.KeyMsg, action string) bool {
	return m.keys.IsAction(msg, action, m.ActiveScope())
}

// TopScreen is the open modal, or nil.
func (m Model) TopScreen() Screen { return m.screens.Top() }

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

func (m *Model) CommandRegistry() *CommandRegistry { return m.commands }
func (m *Model) Keys() *KeyRegistry                { return m.keys }
func (m *Model) Logger() *zap.Logger               { return m.logger }
func (m *Model) Context() context.Context          { return m.mountCtx }
func (m *Model) Now() time.Time                    { return m.engine.Now() }

// Mask hides value with the configured mask rune.
func (m *Model) Mask(value string) string { return Mask(value, m.maskRune) }

func (m *Model) MaskRune() rune { return m.maskRune }

// Spinner renders the shared busy indicator.
func (m *Model) Spinner() string { return m.spinner.View() }

func (m Model) Battery() int { return m.battery }
