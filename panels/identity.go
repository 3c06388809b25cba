package panels

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/widgets"
)

const (
	fieldDID = iota
	fieldPublicKey
	fieldPrivateKey
	identityFields
)

var identityLabels = [identityFields]string{"DID", "Public Key", "Private Key"}

// IdentityPanel generates a placeholder decentralized identity and shows its
// keys, with the private key hidden until revealed.
type IdentityPanel struct {
	deps     Deps
	generate core.Action
	identity *sim.Identity
	private  core.Secret
	cursor   int
	copied   core.Flash
}

func NewIdentity(d Deps) *IdentityPanel {
	return &IdentityPanel{
		deps:     d,
		generate: core.Action{Name: "generate"},
		copied:   core.Flash{Key: "copy"},
	}
}

func (p *IdentityPanel) ID() core.ModuleID           { return core.Identity }
func (p *IdentityPanel) Title() string               { return core.Identity.Title() }
func (p *IdentityPanel) Scope() string               { return scopeOf(core.Identity) }
func (p *IdentityPanel) Mount(m *core.Model) tea.Cmd { return nil }
func (p *IdentityPanel) Unmount(m *core.Model)       {}
func (p *IdentityPanel) Busy() bool                  { return p.generate.Pending() }

// Identity returns the generated identity, if any.
func (p *IdentityPanel) Identity() (sim.Identity, bool) {
	if p.identity == nil {
		return sim.Identity{}, false
	}
	return *p.identity, true
}

func (p *IdentityPanel) value(field int) string {
	if p.identity == nil {
		return ""
	}
	switch field {
	case fieldDID:
		return p.identity.DID
	case fieldPublicKey:
		return p.identity.PublicKey
	default:
		return p.identity.PrivateKey
	}
}

func (p *IdentityPanel) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.ActionResultMsg:
		if !p.generate.Settle(msg) {
			return nil
		}
		if err := p.generate.Err(); err != nil {
			m.SetError(err)
			return nil
		}
		blob, _ := p.generate.Result()
		if id, ok := blob.Payload.(sim.Identity); ok {
			p.identity = &id
			p.private.Hide()
			m.SetStatus("New identity generated")
		}
	case core.FlashExpiredMsg:
		p.copied.Expire(msg)
	case tea.KeyMsg:
		return p.handleKey(m, msg)
	}
	return nil
}

func (p *IdentityPanel) handleKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.Is(msg, "generate"):
		return m.Run(&p.generate, p.work())
	case m.Is(msg, "export"):
		exportBlob(m, p.deps, p.blob(), p.identity != nil)
	case p.identity == nil:
		return nil
	case m.Is(msg, "cursor-down"):
		p.cursor = (p.cursor + 1) % identityFields
	case m.Is(msg, "cursor-up"):
		p.cursor = (p.cursor - 1 + identityFields) % identityFields
	case m.Is(msg, "reveal"):
		p.private.Toggle()
	case m.Is(msg, "copy"):
		return copyText(m, p.deps, &p.copied, identityLabels[p.cursor], p.value(p.cursor))
	}
	return nil
}

func (p *IdentityPanel) work() core.Work {
	gen := p.deps.Identities
	log := p.deps.logger()
	return func(ctx context.Context) (core.Blob, error) {
		if gen == nil {
			return core.Blob{}, errors.New("identity generator unavailable")
		}
		id, err := gen.Generate(ctx)
		if err != nil {
			return core.Blob{}, err
		}
		log.Info("identity generated", zap.String("did", id.DID))
		return identityBlob(id), nil
	}
}

func identityBlob(id sim.Identity) core.Blob {
	return core.Blob{
		Title:    "Identity",
		Text:     id.DID,
		Payload:  id,
		Filename: "identity.json",
		Format:   export.JSON,
	}
}

func (p *IdentityPanel) blob() core.Blob {
	if p.identity == nil {
		return core.Blob{}
	}
	return identityBlob(*p.identity)
}

func (p *IdentityPanel) Build(m *core.Model) widgets.Widget {
	if p.identity == nil {
		body := "No Identity Found\n\nYou have not generated a decentralized identity yet.\nPress n to create your sovereign identity."
		if p.generate.Pending() {
			body = m.Spinner() + " Generating keys..."
		}
		return widgets.Pane{Title: p.Title(), Content: body, Active: true, Busy: p.Busy(), Hint: "n generate"}
	}
	fields := make(widgets.Fields, 0, identityFields)
	for i := 0; i < identityFields; i++ {
		value := p.value(i)
		trailing := ""
		if i == fieldPrivateKey {
			value = p.private.Display(value, m.MaskRune())
			trailing = "[r " + p.private.Label() + "]"
		}
		if i == p.cursor && p.copied.Active() {
			trailing = strings.TrimSpace(trailing + " " + p.copied.Text())
		}
		fields = append(fields, widgets.Field{Label: identityLabels[i], Value: value, Trailing: trailing, Focused: i == p.cursor})
	}
	warning := widgets.Banner{
		Kind: widgets.BannerWarning,
		Text: "Never share your private key. Anyone holding it controls this identity.",
	}
	busy := p.Busy()
	return widgets.Func(func(width, height int) string {
		inner := max(1, width-4)
		content := fields.Render(inner, identityFields*2) + "\n\n" + warning.Render(inner, 3)
		return widgets.Pane{Title: p.Title(), Content: content, Active: true, Busy: busy, Hint: "n regenerate"}.Render(width, height)
	})
}
