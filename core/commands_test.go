package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSearchFiltersByScopeAndDisabled(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "a", Name: "Alpha", Scopes: []string{"panel:a"}},
		{ID: "b", Name: "Beta", Scopes: []string{"panel:b"}, Disabled: func(m *Model) (bool, string) { return true, "blocked" }},
	})
	m := NewModel(Options{Commands: reg})
	resA := reg.Search("alpha", "panel:a", &m)
	if len(resA) != 1 || resA[0].CommandID != "a" {
		t.Fatalf("expected only command a in panel:a, got %+v", resA)
	}
	resB := reg.Search("beta", "panel:b", &m)
	if len(resB) != 1 || !resB[0].Disabled || resB[0].Reason != "blocked" {
		t.Fatalf("expected disabled command in panel:b, got %+v", resB)
	}
}

type commandPanel struct {
	stubPanel
	ran int
}

func (p *commandPanel) Commands() []Command {
	return []Command{{
		ID:     "stub.run",
		Name:   "Run stub",
		Scopes: []string{"*"},
		Execute: func(m *Model) tea.Cmd {
			p.ran++
			return nil
		},
	}}
}

func TestPanelCommandsLiveWhileMounted(t *testing.T) {
	specs := []PanelSpec{
		{ID: Overview, New: func() Panel { return &stubPanel{id: Overview} }},
		{ID: Decompiler, New: func() Panel { return &commandPanel{stubPanel: stubPanel{id: Decompiler}} }},
	}
	reg := NewCommandRegistry(nil)
	m := NewModel(Options{Panels: specs, Commands: reg, Initial: "decompiler"})
	if res := reg.Search("run stub", "panel:decompiler", &m); len(res) != 1 {
		t.Fatalf("panel command should be registered while mounted: %+v", res)
	}
	reg.Execute("stub.run", &m)
	if p := m.ActivePanel().(*commandPanel); p.ran != 1 {
		t.Fatalf("panel command did not run")
	}
	m.SelectModule(Overview)
	if res := reg.Search("run stub", "panel:overview", &m); len(res) != 0 {
		t.Fatalf("panel command should go away on unmount: %+v", res)
	}
}
