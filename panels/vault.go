package panels

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/store"
	"github.com/jask/aegisdeck/screens"
	"github.com/jask/aegisdeck/widgets"
)

// recordAddMsg carries a submitted vault form back to the panel that opened it.
type recordAddMsg struct {
	generation uint64
	item       screens.VaultItem
}

func (m recordAddMsg) Target() (core.ModuleID, uint64) { return core.Vault, m.generation }

// recordTable flattens records for CSV export, one row per listed record.
type recordTable []store.Record

func (t recordTable) Header() []string {
	return []string{"id", "title", "type", "content", "created_at"}
}

func (t recordTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{r.ID, r.Title, string(r.Kind), r.Content, r.CreatedAt.UTC().Format(time.RFC3339)})
	}
	return rows
}

// VaultPanel lists the session's records. Records live in the store, so they
// outlive the panel; reveal state does not.
type VaultPanel struct {
	deps     Deps
	records  []store.Record
	revealed map[string]*core.Secret
	cursor   int
	copied   core.Flash
}

func NewVault(d Deps) *VaultPanel {
	return &VaultPanel{deps: d, revealed: map[string]*core.Secret{}, copied: core.Flash{Key: "copy"}}
}

func (p *VaultPanel) ID() core.ModuleID { return core.Vault }
func (p *VaultPanel) Title() string     { return core.Vault.Title() }
func (p *VaultPanel) Scope() string     { return scopeOf(core.Vault) }

func (p *VaultPanel) Mount(m *core.Model) tea.Cmd {
	if err := p.reload(m); err != nil {
		m.SetError(err)
	}
	return nil
}

func (p *VaultPanel) Unmount(m *core.Model) {}

// Records returns the records currently listed.
func (p *VaultPanel) Records() []store.Record { return p.records }

func (p *VaultPanel) reload(m *core.Model) error {
	if p.deps.Records == nil {
		return errors.New("vault store unavailable")
	}
	recs, err := p.deps.Records.List(m.Context())
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	p.records = recs
	p.cursor = min(p.cursor, max(0, len(recs)-1))
	return nil
}

func (p *VaultPanel) selected() (store.Record, bool) {
	if len(p.records) == 0 {
		return store.Record{}, false
	}
	return p.records[p.cursor], true
}

func (p *VaultPanel) secret(id string) *core.Secret {
	s, ok := p.revealed[id]
	if !ok {
		s = &core.Secret{}
		p.revealed[id] = s
	}
	return s
}

// Add stores a record and refreshes the list.
func (p *VaultPanel) Add(m *core.Model, item screens.VaultItem) error {
	if p.deps.Records == nil {
		return errors.New("vault store unavailable")
	}
	rec, err := p.deps.Records.Add(m.Context(), store.ParseKind(item.Kind), item.Title, item.Content)
	if err != nil {
		return err
	}
	p.deps.logger().Info("vault record added", zap.String("id", rec.ID), zap.String("kind", string(rec.Kind)))
	if err := p.reload(m); err != nil {
		return err
	}
	p.cursor = len(p.records) - 1
	return nil
}

// Delete removes the record with id.
func (p *VaultPanel) Delete(m *core.Model, id string) error {
	if p.deps.Records == nil {
		return errors.New("vault store unavailable")
	}
	if err := p.deps.Records.Delete(m.Context(), id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	delete(p.revealed, id)
	p.deps.logger().Info("vault record deleted", zap.String("id", id))
	return p.reload(m)
}

func (p *VaultPanel) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case recordAddMsg:
		if err := p.Add(m, msg.item); err != nil {
			m.SetError(err)
			return nil
		}
		m.SetStatus("Added " + msg.item.Title)
	case core.FlashExpiredMsg:
		p.copied.Expire(msg)
	case tea.KeyMsg:
		return p.handleKey(m, msg)
	}
	return nil
}

func (p *VaultPanel) handleKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	if m.Is(msg, "add") {
		return p.openForm(m)
	}
	rec, ok := p.selected()
	switch {
	case m.Is(msg, "export"):
		exportBlob(m, p.deps, p.blob(), len(p.records) > 0)
	case !ok:
		return nil
	case m.Is(msg, "cursor-down"):
		p.cursor = (p.cursor + 1) % len(p.records)
	case m.Is(msg, "cursor-up"):
		p.cursor = (p.cursor - 1 + len(p.records)) % len(p.records)
	case m.Is(msg, "reveal"):
		if rec.Kind.Sensitive() {
			p.secret(rec.ID).Toggle()
		}
	case m.Is(msg, "copy"):
		return copyText(m, p.deps, &p.copied, rec.Title, rec.Content)
	case m.Is(msg, "delete"):
		if err := p.Delete(m, rec.ID); err != nil {
			m.SetError(err)
			return nil
		}
		m.SetStatus("Deleted " + rec.Title)
	}
	return nil
}

func (p *VaultPanel) openForm(m *core.Model) tea.Cmd {
	gen := m.Generation()
	form := screens.NewVaultForm(m.Keys(), m.MaskRune(), func(item screens.VaultItem) tea.Msg {
		return recordAddMsg{generation: gen, item: item}
	})
	return func() tea.Msg { return core.PushScreenMsg{Screen: form} }
}

func (p *VaultPanel) Commands() []core.Command {
	scopes := []string{scopeOf(core.Vault)}
	return []core.Command{
		{
			ID:          "vault.add",
			Name:        "Add vault item",
			Description: "store a password or note",
			Scopes:      scopes,
			Execute:     p.openForm,
			Disabled: func(*core.Model) (bool, string) {
				if p.deps.Records == nil {
					return true, "vault store unavailable"
				}
				return false, ""
			},
		},
		{
			ID:          "vault.export",
			Name:        "Export vault items",
			Description: "save vault_items.csv",
			Scopes:      scopes,
			Execute: func(m *core.Model) tea.Cmd {
				exportBlob(m, p.deps, p.blob(), len(p.records) > 0)
				return nil
			},
			Disabled: func(*core.Model) (bool, string) {
				if len(p.records) == 0 {
					return true, "vault is empty"
				}
				return false, ""
			},
		},
	}
}

func (p *VaultPanel) blob() core.Blob {
	table := make(recordTable, len(p.records))
	copy(table, p.records)
	return core.Blob{Title: "Vault items", Payload: table, Filename: "vault_items.csv", Format: export.CSV}
}

// display is what the content column shows for rec.
func (p *VaultPanel) display(m *core.Model, rec store.Record) string {
	if !rec.Kind.Sensitive() {
		return rec.Content
	}
	return p.secret(rec.ID).Display(rec.Content, m.MaskRune())
}

func (p *VaultPanel) Build(m *core.Model) widgets.Widget {
	rows := make([][]string, 0, len(p.records))
	for i, rec := range p.records {
		content := p.display(m, rec)
		if i == p.cursor && p.copied.Active() {
			content += "  " + p.copied.Text()
		}
		rows = append(rows, []string{rec.Title, string(rec.Kind), content, rec.CreatedAt.Local().Format("2006-01-02")})
	}
	table := widgets.Table{
		Headers:  []string{"Title", "Type", "Content", "Created"},
		Rows:     rows,
		Selected: p.cursor,
		Empty:    "Your vault is empty. Press a to add an item.",
	}
	if len(rows) == 0 {
		table.Selected = -1
	}
	return widgets.Func(func(width, height int) string {
		body := table.Render(max(1, width-4), max(1, height-2))
		hint := fmt.Sprintf("%d items", len(rows))
		return widgets.Pane{Title: p.Title(), Content: body, Active: true, Hint: hint}.Render(width, height)
	})
}
