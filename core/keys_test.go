package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyRegistryScopeMatch(t *testing.T) {
	reg := NewKeyRegistry([]KeyBinding{
		{Keys: []string{"ctrl+k"}, Action: "palette", Scopes: []string{"panel:a"}},
		{Keys: []string{"q"}, Action: "quit", Scopes: []string{"*"}},
		{Keys: []string{"g"}, Action: "goto", Scopes: []string{"panel:*"}},
	})
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "panel:a") {
		t.Fatalf("expected ctrl+k in panel:a")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlK}, "palette", "panel:b") {
		t.Fatalf("did not expect ctrl+k in panel:b")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "quit", "panel:b") {
		t.Fatalf("expected q to match wildcard scope")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}, "goto", "panel:vault") {
		t.Fatalf("expected prefix scope to match")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}, "goto", "screen:command") {
		t.Fatalf("prefix scope should not match other scopes")
	}
}

func TestApplyActionKeybindingsOverridesOnlyNamedAction(t *testing.T) {
	defaults := DefaultKeyBindings()
	out := ApplyActionKeybindings(defaults, map[string][]string{"export": {"ctrl+e"}})
	reg := NewKeyRegistry(out)
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyCtrlE}, "export", "panel:vault") {
		t.Fatalf("override should bind ctrl+e")
	}
	if reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}, "export", "panel:power") {
		t.Fatalf("old key should be gone for every export binding")
	}
	if !reg.IsAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, "add", "panel:vault") {
		t.Fatalf("unrelated bindings should keep their keys")
	}
	if len(out) != len(defaults) {
		t.Fatalf("binding count changed")
	}
}

func TestDefaultKeybindingsByActionSkipsDisplayOnly(t *testing.T) {
	byAction := DefaultKeybindingsByAction(DefaultKeyBindings())
	if _, ok := byAction[""]; ok {
		t.Fatalf("display-only bindings have no action")
	}
	if keys := byAction["goto-vault"]; len(keys) != 1 || keys[0] != "2" {
		t.Fatalf("goto-vault = %v", keys)
	}
}
