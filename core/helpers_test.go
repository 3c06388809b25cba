package core

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/widgets"
)

type stubPanel struct {
	id       ModuleID
	mounts   int
	unmounts int
	keys     []string
	settled  int
	capture  bool
	busy     bool
	action   Action
	flash    Flash
}

func (p *stubPanel) ID() ModuleID  { return p.id }
func (p *stubPanel) Title() string { return p.id.Title() }
func (p *stubPanel) Scope() string { return "panel:" + p.id.Slug() }
func (p *stubPanel) Capturing() bool {
	return p.capture
}
func (p *stubPanel) Busy() bool { return p.busy }
func (p *stubPanel) Mount(m *Model) tea.Cmd {
	p.mounts++
	return nil
}
func (p *stubPanel) Unmount(m *Model) { p.unmounts++ }
func (p *stubPanel) Update(m *Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ActionResultMsg:
		if p.action.Settle(msg) {
			p.settled++
		}
	case FlashExpiredMsg:
		p.flash.Expire(msg)
	case tea.KeyMsg:
		p.keys = append(p.keys, msg.String())
	}
	return nil
}
func (p *stubPanel) Build(m *Model) widgets.Widget {
	return widgets.Text("panel:" + p.id.Slug())
}

// panelLog records every panel a model builds.
type panelLog struct {
	built []*stubPanel
}

func (l *panelLog) last() *stubPanel {
	if len(l.built) == 0 {
		return nil
	}
	return l.built[len(l.built)-1]
}

func (l *panelLog) specs() []PanelSpec {
	specs := make([]PanelSpec, 0, len(Modules()))
	for _, id := range Modules() {
		id := id
		specs = append(specs, PanelSpec{ID: id, New: func() Panel {
			p := &stubPanel{id: id, action: Action{Name: "work"}, flash: Flash{Key: "copy"}}
			l.built = append(l.built, p)
			return p
		}})
	}
	return specs
}

func newTestModel(t *testing.T, log *panelLog, initial string) Model {
	t.Helper()
	return NewModel(Options{
		Panels:   log.specs(),
		Keys:     NewKeyRegistry(DefaultKeyBindings()),
		Commands: NewCommandRegistry(nil),
		Engine:   sim.Instant(1),
		Initial:  initial,
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

// firstOfBatch runs cmd and returns the message of its first command.
func firstOfBatch(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	for _, c := range batch {
		if c != nil {
			return c()
		}
	}
	t.Fatalf("empty batch")
	return nil
}

func blobWork(text string) Work {
	return func(ctx context.Context) (Blob, error) {
		return Blob{Text: text}, nil
	}
}
