package screens

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/core"
)

func typeText(t *testing.T, s core.Screen, text string) core.Screen {
	t.Helper()
	for _, r := range text {
		next, _, pop := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if pop {
			t.Fatalf("screen closed while typing %q", text)
		}
		s = next
	}
	return s
}

func TestVaultFormRequiresTitleAndContent(t *testing.T) {
	var got *VaultItem
	form := NewVaultForm(nil, core.DefaultMask, func(item VaultItem) tea.Msg {
		got = &item
		return nil
	})
	_, cmd, pop := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if pop || cmd != nil {
		t.Fatalf("empty form must not submit")
	}
	if !strings.Contains(form.err, "title is required") || !strings.Contains(form.err, "content is required") {
		t.Fatalf("unexpected validation message %q", form.err)
	}
	if got != nil {
		t.Fatalf("submit callback should not run")
	}
}

func TestVaultFormSubmitsNote(t *testing.T) {
	var got VaultItem
	form := NewVaultForm(nil, core.DefaultMask, func(item VaultItem) tea.Msg {
		got = item
		return nil
	})
	typeText(t, form, "  Recovery codes ")
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form.Update(tea.KeyMsg{Type: tea.KeyRight})
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, form, "1111 2222")
	_, cmd, pop := form.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop || cmd == nil {
		t.Fatalf("valid form should close with a submit command")
	}
	cmd()
	if got.Title != "Recovery codes" || got.Kind != "note" || got.Content != "1111 2222" {
		t.Fatalf("unexpected submission %+v", got)
	}
}

func TestVaultFormMasksPasswordContent(t *testing.T) {
	form := NewVaultForm(nil, '*', nil)
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, form, "hunter2")
	view := form.View(60, 20)
	if strings.Contains(view, "hunter2") || !strings.Contains(view, "*******") {
		t.Fatalf("password content should be masked in the form:\n%s", view)
	}
}

func TestVaultFormEscCancels(t *testing.T) {
	_, _, pop := NewVaultForm(nil, core.DefaultMask, nil).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !pop {
		t.Fatalf("esc should close the form")
	}
}

func TestVaultFormFollowsKeybindingOverrides(t *testing.T) {
	bindings := core.ApplyActionKeybindings(core.DefaultKeyBindings(), map[string][]string{
		"save":  {"ctrl+w"},
		"close": {"ctrl+q"},
	})
	submitted := false
	form := NewVaultForm(core.NewKeyRegistry(bindings), core.DefaultMask, func(VaultItem) tea.Msg {
		submitted = true
		return nil
	})
	typeText(t, form, "Pager")
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(t, form, "2468")

	if _, _, pop := form.Update(tea.KeyMsg{Type: tea.KeyEsc}); pop {
		t.Fatalf("esc is no longer bound to close")
	}
	if _, cmd, pop := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS}); pop || cmd != nil {
		t.Fatalf("ctrl+s is no longer bound to save")
	}
	_, cmd, pop := form.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	if !pop || cmd == nil {
		t.Fatalf("overridden save key should submit")
	}
	cmd()
	if !submitted {
		t.Fatalf("submit callback did not run")
	}
	if _, _, pop := NewVaultForm(core.NewKeyRegistry(bindings), core.DefaultMask, nil).Update(tea.KeyMsg{Type: tea.KeyCtrlQ}); !pop {
		t.Fatalf("overridden close key should cancel")
	}
}

func TestModulePickerDigitAndFilter(t *testing.T) {
	picker := NewModulePicker(nil)
	_, cmd, pop := picker.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'7'}})
	if !pop || cmd == nil {
		t.Fatalf("digit should select immediately")
	}
	if msg, ok := cmd().(core.ModuleSelectMsg); !ok || msg.ID != core.FlashToolkit {
		t.Fatalf("digit 7 selected %+v", msg)
	}

	picker = NewModulePicker(nil)
	picker = typeText(t, picker, "powr")
	if !strings.Contains(picker.View(60, 20), "Power Audit") {
		t.Fatalf("filtered view should list power audit")
	}
	_, cmd, pop = picker.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop || cmd == nil {
		t.Fatalf("enter should select the filtered module")
	}
	if msg, ok := cmd().(core.ModuleSelectMsg); !ok || msg.ID != core.PowerAudit {
		t.Fatalf("filtered selection = %+v", msg)
	}
}

func TestCommandPaletteExecutesSelection(t *testing.T) {
	m := core.NewModel(core.Options{})
	palette := NewCommandPalette(&m, "panel:overview")
	palette = typeText(t, palette, "vault")
	_, cmd, pop := palette.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop || cmd == nil {
		t.Fatalf("enter should run the highlighted command")
	}
	msg, ok := cmd().(core.CommandExecuteMsg)
	if !ok || msg.CommandID != "goto-vault" {
		t.Fatalf("unexpected command %+v", msg)
	}
}
