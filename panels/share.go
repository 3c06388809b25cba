package panels

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/validate"
	"github.com/jask/aegisdeck/widgets"
)

const (
	shareRecipient = iota
	shareSecret
)

type shareInput struct {
	Recipient string `validate:"notblank" label:"recipient"`
	Secret    string `validate:"notblank" label:"secret"`
}

var shareSteps = []string{
	"Generate a one-time symmetric key.",
	"Encrypt the secret with the symmetric key (AES-256 GCM).",
	"Encrypt the symmetric key with the recipient's public key.",
	"Send the package over a decentralized channel.",
}

// SharePanel sends a secret to a recipient DID through the simulated
// hybrid-encryption transport.
type SharePanel struct {
	deps  Deps
	form  *form
	share core.Action
	done  core.Flash
}

func NewShare(d Deps) *SharePanel {
	return &SharePanel{
		deps: d,
		form: newForm(
			textField("Recipient", "did:aegis:...", ""),
			secretField("Secret", "message or password", core.DefaultMask),
		),
		share: core.Action{Name: "share"},
		done:  core.Flash{Key: "shared"},
	}
}

func (p *SharePanel) ID() core.ModuleID { return core.SecureShare }
func (p *SharePanel) Title() string     { return core.SecureShare.Title() }
func (p *SharePanel) Scope() string     { return p.form.scope(scopeOf(core.SecureShare)) }
func (p *SharePanel) Capturing() bool   { return p.form.editing }
func (p *SharePanel) Busy() bool        { return p.share.Pending() }

func (p *SharePanel) Mount(m *core.Model) tea.Cmd {
	p.form.fields[shareSecret].input.EchoCharacter = m.MaskRune()
	return nil
}

func (p *SharePanel) Unmount(m *core.Model) {}

func (p *SharePanel) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.ActionResultMsg:
		if !p.share.Settle(msg) {
			return nil
		}
		if err := p.share.Err(); err != nil {
			m.SetError(fmt.Errorf("share: %w", err))
			return nil
		}
		p.form.clear(shareRecipient)
		p.form.clear(shareSecret)
		m.SetStatus("Secret shared")
		return m.ShowFlash(&p.done, "Secret shared successfully!", core.ShareFlashDuration)
	case core.FlashExpiredMsg:
		p.done.Expire(msg)
	case tea.KeyMsg:
		if !p.form.editing && m.Is(msg, "run") {
			return p.start(m)
		}
		_, cmd := p.form.handle(m, msg)
		return cmd
	}
	return nil
}

func (p *SharePanel) start(m *core.Model) tea.Cmd {
	in := shareInput{Recipient: p.form.text(shareRecipient), Secret: p.form.fields[shareSecret].input.Value()}
	if err := p.form.check(validate.Struct(in)); err != nil {
		m.SetError(err)
		return nil
	}
	sharer := p.deps.Sharer
	log := p.deps.logger()
	return m.Run(&p.share, func(ctx context.Context) (core.Blob, error) {
		if sharer == nil {
			return core.Blob{}, errors.New("share transport unavailable")
		}
		receipt, err := sharer.Share(ctx, in.Recipient, in.Secret)
		if err != nil {
			return core.Blob{}, err
		}
		log.Info("secret shared", zap.String("receipt", receipt.ID), zap.String("recipient", receipt.Recipient))
		return core.Blob{Title: "Share receipt", Text: receiptText(receipt), Payload: receipt}, nil
	})
}

func receiptText(r sim.ShareReceipt) string {
	return fmt.Sprintf("Receipt %s\nRecipient %s\n%d bytes sent at %s", r.ID, r.Recipient, r.Bytes, r.SentAt.Format("15:04:05"))
}

func (p *SharePanel) Build(m *core.Model) widgets.Widget {
	fields := p.form.widget()
	steps := "How it works:\n"
	for i, s := range shareSteps {
		steps += fmt.Sprintf("%d. %s\n", i+1, s)
	}
	status := ""
	switch {
	case p.share.Pending():
		status = m.Spinner() + " Sharing..."
	case p.done.Active():
		status = widgets.Banner{Kind: widgets.BannerSuccess, Text: p.done.Text()}.Render(48, 3)
	}
	busy := p.Busy()
	return widgets.Func(func(width, height int) string {
		inner := max(1, width-4)
		content := fields.Render(inner, len(fields)*2) + "\n\n" + status + "\n\n" + steps
		return widgets.Pane{Title: p.Title(), Content: content, Active: true, Busy: busy, Hint: "x share"}.Render(width, height)
	})
}
