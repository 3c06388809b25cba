package panels

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/widgets"
)

const quantumIntro = `Large quantum computers threaten RSA and elliptic curve cryptography, which
protect most of today's traffic. Post-quantum cryptography (PQC) covers
algorithms believed to resist both classical and quantum attacks.`

var pqcAlgorithms = []widgets.Card{
	{
		Title:    "CRYSTALS-Kyber",
		Subtitle: "Key-Encapsulation Mechanism (KEM)",
		Body:     "Establishes secret keys over a public channel, replacing RSA and ECC key exchange.",
	},
	{
		Title:    "CRYSTALS-Dilithium",
		Subtitle: "Digital Signature Algorithm",
		Body:     "Verifies authenticity and integrity of messages, replacing signature schemes like ECDSA.",
	},
}

// QuantumPanel is read-only.
type QuantumPanel struct{}

func NewQuantum() *QuantumPanel { return &QuantumPanel{} }

func (p *QuantumPanel) ID() core.ModuleID                         { return core.Quantum }
func (p *QuantumPanel) Title() string                             { return core.Quantum.Title() }
func (p *QuantumPanel) Scope() string                             { return scopeOf(core.Quantum) }
func (p *QuantumPanel) Mount(m *core.Model) tea.Cmd               { return nil }
func (p *QuantumPanel) Unmount(m *core.Model)                     {}
func (p *QuantumPanel) Update(m *core.Model, msg tea.Msg) tea.Cmd { return nil }

func (p *QuantumPanel) Build(m *core.Model) widgets.Widget {
	cards := make([]widgets.Widget, 0, len(pqcAlgorithms))
	for _, c := range pqcAlgorithms {
		cards = append(cards, c)
	}
	return widgets.VStack{
		Widgets: []widgets.Widget{
			widgets.Pane{Title: "Quantum Resistance", Content: quantumIntro, Active: true},
			widgets.HStack{Widgets: cards, Gap: 1},
			widgets.Banner{Kind: widgets.BannerInfo, Text: "NIST-standardized PQC keeps identities and data safe into the quantum era."},
		},
		Spacing: 1,
		Ratios:  []float64{0.35, 0.45, 0.2},
	}
}
