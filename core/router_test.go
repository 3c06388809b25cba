package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeScreen struct{ hits int }

func (s *fakeScreen) Title() string        { return "Screen" }
func (s *fakeScreen) Scope() string        { return "screen:test" }
func (s *fakeScreen) View(int, int) string { return "screen" }
func (s *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		s.hits++
		if km.String() == "esc" {
			return s, nil, true
		}
	}
	return s, nil, false
}

func TestScreenGetsKeyBeforePanel(t *testing.T) {
	log := &panelLog{}
	m := newTestModel(t, log, "vault")
	screen := &fakeScreen{}
	m.PushScreen(screen)

	updated, _ := update(t, m, keyRunes("x"))
	if screen.hits != 1 {
		t.Fatalf("screen should handle key first")
	}
	if len(log.last().keys) != 0 {
		t.Fatalf("panel should not receive key when screen open")
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("screen should remain open")
	}
	if updated.ActiveScope() != "screen:test" {
		t.Fatalf("scope = %q", updated.ActiveScope())
	}
}

func TestScreenSwallowsNavigationKeys(t *testing.T) {
	m := newTestModel(t, &panelLog{}, "vault")
	m.PushScreen(&fakeScreen{})
	m, _ = update(t, m, keyRunes("5"))
	if m.ActiveModule() != Vault {
		t.Fatalf("digits belong to the screen while it is open")
	}
}

func TestScreenCanPopItself(t *testing.T) {
	m := newTestModel(t, &panelLog{}, "")
	m.PushScreen(&fakeScreen{})
	updated, _ := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if updated.screens.Len() != 0 {
		t.Fatalf("expected screen to pop on esc")
	}
}

func TestModulePickerKeyOpensScreen(t *testing.T) {
	m := newTestModel(t, &panelLog{}, "")
	m.OpenModulePicker = func(*Model) Screen { return &fakeScreen{} }
	m, _ = update(t, m, keyRunes("g"))
	if m.screens.Len() != 1 || m.ActiveScope() != "screen:test" {
		t.Fatalf("g should open the module picker")
	}
}
