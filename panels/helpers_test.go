package panels

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/clipboard"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/store"
	"github.com/jask/aegisdeck/screens"
)

// harness drives a real host model with every panel registered.
type harness struct {
	t    *testing.T
	m    core.Model
	clip *clipboard.Memory
	dir  string
	repo *store.RecordRepo
}

func newHarness(t *testing.T, module string) *harness {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := store.NewRecordRepo(db)
	if err := repo.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	engine := sim.Instant(7)
	h := &harness{t: t, clip: &clipboard.Memory{}, dir: t.TempDir(), repo: repo}
	deps := Deps{
		Identities: sim.MockIdentities{Engine: engine},
		Sharer:     sim.MockSharer{Engine: engine},
		Toolkit:    sim.MockToolkit{Engine: engine},
		Records:    repo,
		Exporter:   &export.Writer{Dir: h.dir},
		Clipboard:  h.clip,
	}
	h.m = core.NewModel(core.Options{
		Panels:           Specs(deps),
		Keys:             core.NewKeyRegistry(core.DefaultKeyBindings()),
		Engine:           engine,
		Initial:          module,
		OpenCommandModal: screens.NewCommandPalette,
	})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(core.Model)
	if !ok {
		h.t.Fatalf("Update returned %T", next)
	}
	h.m = m
	return cmd
}

func key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// press sends each key and returns the command of the last one.
func (h *harness) press(keys ...string) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(key(k))
	}
	return cmd
}

// typeText sends text one rune at a time.
func (h *harness) typeText(text string) {
	h.t.Helper()
	for _, r := range text {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// actionResult runs cmd and returns the ActionResultMsg it produces. Only the
// commands of an action batch are run; timers are never started.
func actionResult(t *testing.T, cmd tea.Cmd) core.ActionResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected an action command")
	}
	msg := cmd()
	if res, ok := msg.(core.ActionResultMsg); ok {
		return res
	}
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected an action batch, got %T", msg)
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if res, ok := c().(core.ActionResultMsg); ok {
			return res
		}
	}
	t.Fatalf("batch carried no action result")
	return core.ActionResultMsg{}
}

func (h *harness) view() string {
	h.t.Helper()
	return h.m.RenderActive(200, 40)
}
