package panels

import (
	"strings"
	"testing"

	"github.com/jask/aegisdeck/core"
)

func TestEveryModuleMountsItsOwnPanel(t *testing.T) {
	h := newHarness(t, "")
	for _, id := range core.Modules() {
		h.send(core.ModuleSelectMsg{ID: id})
		p := h.m.ActivePanel()
		if p == nil || p.ID() != id {
			t.Fatalf("selected %s, mounted %v", id.Slug(), p)
		}
		if strings.TrimSpace(h.view()) == "" {
			t.Fatalf("%s rendered nothing", id.Slug())
		}
	}
}

func TestOverviewEnterOpensCard(t *testing.T) {
	h := newHarness(t, "overview")
	if !strings.Contains(h.view(), "Core Principles") {
		t.Fatalf("overview should list the core principles")
	}
	h.press("down")
	cmd := h.press("enter")
	if cmd == nil {
		t.Fatalf("enter should select a module")
	}
	h.send(cmd())
	if got := h.m.ActiveModule(); got != core.Vault {
		t.Fatalf("expected vault, got %s", got.Slug())
	}
}

func TestQuantumListsAlgorithms(t *testing.T) {
	h := newHarness(t, "quantum")
	view := h.view()
	for _, want := range []string{"CRYSTALS-Kyber", "CRYSTALS-Dilithium"} {
		if !strings.Contains(view, want) {
			t.Fatalf("quantum view missing %s", want)
		}
	}
}
