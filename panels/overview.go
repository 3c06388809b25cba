package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/widgets"
)

var blurbs = map[core.ModuleID]string{
	core.Identity:     "Manage your decentralized identity (DID). Your keys, your identity.",
	core.Vault:        "Store passwords and sensitive notes for this session.",
	core.SecureShare:  "Share secrets end-to-end without a central server.",
	core.Quantum:      "Post-quantum cryptographic principles for future-proof security.",
	core.Decompiler:   "Decompile firmware images and flag weak spots.",
	core.ProtoCapture: "Sniff USB, serial, SPI, I2C and CAN traffic.",
	core.FlashToolkit: "Read and write NOR, NAND and EEPROM chips.",
	core.DebugRun:     "Run a binary inside the sandbox and watch it.",
	core.PowerAudit:   "Sample supply current and chart power draw.",
}

var principles = []struct{ name, text string }{
	{"Zero-Knowledge", "We never have access to your master password or your data."},
	{"End-to-End Encryption", "All data is encrypted at rest and in transit, using your keys."},
	{"Decentralization", "You control your data without reliance on centralized servers."},
	{"Open Source", "Transparent and auditable code to ensure trust and security."},
}

// Overview is the landing panel: one card per module and the core principles.
type Overview struct {
	cursor int
	cards  []core.ModuleID
}

func NewOverview() *Overview {
	cards := make([]core.ModuleID, 0, len(core.Modules())-1)
	for _, id := range core.Modules() {
		if id != core.Overview {
			cards = append(cards, id)
		}
	}
	return &Overview{cards: cards}
}

func (p *Overview) ID() core.ModuleID           { return core.Overview }
func (p *Overview) Title() string               { return core.Overview.Title() }
func (p *Overview) Scope() string               { return scopeOf(core.Overview) }
func (p *Overview) Mount(m *core.Model) tea.Cmd { return nil }
func (p *Overview) Unmount(m *core.Model)       {}

// Selected is the module under the card cursor.
func (p *Overview) Selected() core.ModuleID { return p.cards[p.cursor] }

func (p *Overview) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case m.Is(key, "cursor-down"):
		p.cursor = (p.cursor + 1) % len(p.cards)
	case m.Is(key, "cursor-up"):
		p.cursor = (p.cursor - 1 + len(p.cards)) % len(p.cards)
	case m.Is(key, "open"):
		return core.SelectModuleCmd(p.Selected())
	}
	return nil
}

func (p *Overview) Build(m *core.Model) widgets.Widget {
	welcome := widgets.Pane{
		Title:   "Welcome to Aegis Deck",
		Content: "Your sovereign space for digital identity, data security and hardware analysis.\nEverything here is simulated and lives only as long as this session.",
		Active:  true,
	}
	return widgets.VStack{
		Widgets: []widgets.Widget{
			widgets.Fixed{Widget: welcome, Height: 4},
			widgets.Func(p.renderCards),
			widgets.Fixed{Widget: widgets.Func(renderPrinciples), Height: len(principles) + 3},
		},
		Spacing: 1,
		Ratios:  []float64{0.2, 0.5, 0.3},
	}
}

func (p *Overview) renderCards(width, height int) string {
	const cols = 3
	rows := (len(p.cards) + cols - 1) / cols
	rowWidgets := make([]widgets.Widget, 0, rows)
	for r := 0; r < rows; r++ {
		line := make([]widgets.Widget, 0, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(p.cards) {
				line = append(line, widgets.Text(""))
				continue
			}
			id := p.cards[i]
			line = append(line, widgets.Card{
				Title:    "[" + id.Key() + "] " + id.Title(),
				Body:     blurbs[id],
				Selected: i == p.cursor,
			})
		}
		rowWidgets = append(rowWidgets, widgets.HStack{Widgets: line, Gap: 1})
	}
	return widgets.VStack{Widgets: rowWidgets}.Render(width, height)
}

func renderPrinciples(width, height int) string {
	lines := make([]string, 0, len(principles))
	for _, pr := range principles {
		lines = append(lines, pr.name+": "+pr.text)
	}
	return widgets.Pane{Title: "Core Principles", Content: strings.Join(lines, "\n")}.Render(width, height)
}
