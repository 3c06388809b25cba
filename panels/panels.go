// Package panels holds the module panels the host can mount: the vault suite
// (overview, identity, vault, share, quantum) and the hardware toolkit
// (decompiler, capture, flash, debug run, power audit).
package panels

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/clipboard"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/store"
)

// Exporter stores an export job and returns where it landed.
type Exporter interface {
	Write(job export.Job) (string, error)
}

// Deps are the backends panels talk to.
type Deps struct {
	Identities sim.IdentityGenerator
	Sharer     sim.Sharer
	Toolkit    sim.Toolkit
	Records    *store.RecordRepo
	Exporter   Exporter
	Clipboard  clipboard.Writer
	Logger     *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Specs returns one factory per module.
func Specs(d Deps) []core.PanelSpec {
	return []core.PanelSpec{
		{ID: core.Overview, New: func() core.Panel { return NewOverview() }},
		{ID: core.Identity, New: func() core.Panel { return NewIdentity(d) }},
		{ID: core.Vault, New: func() core.Panel { return NewVault(d) }},
		{ID: core.SecureShare, New: func() core.Panel { return NewShare(d) }},
		{ID: core.Quantum, New: func() core.Panel { return NewQuantum() }},
		{ID: core.Decompiler, New: func() core.Panel { return NewDecompiler(d) }},
		{ID: core.ProtoCapture, New: func() core.Panel { return NewCapture(d) }},
		{ID: core.FlashToolkit, New: func() core.Panel { return NewFlash(d) }},
		{ID: core.DebugRun, New: func() core.Panel { return NewDebugRun(d) }},
		{ID: core.PowerAudit, New: func() core.Panel { return NewPowerAudit(d) }},
	}
}

func scopeOf(id core.ModuleID) string { return "panel:" + id.Slug() }

// exportBlob writes b and reports the outcome on the status bar.
func exportBlob(m *core.Model, d Deps, b core.Blob, ok bool) {
	if !ok || !b.Exportable() {
		m.SetStatus("Nothing to export yet")
		return
	}
	if d.Exporter == nil {
		m.SetError(fmt.Errorf("export %s: no export directory configured", b.Filename))
		return
	}
	path, err := d.Exporter.Write(b.Job())
	if err != nil {
		m.SetError(err)
		return
	}
	m.SetStatus("Exported " + path)
}

// copyText puts text on the clipboard and shows the copied marker on f.
func copyText(m *core.Model, d Deps, f *core.Flash, what, text string) tea.Cmd {
	if text == "" {
		m.SetStatus("Nothing to copy")
		return nil
	}
	if d.Clipboard == nil {
		m.SetError(fmt.Errorf("copy %s: no clipboard available", what))
		return nil
	}
	if err := d.Clipboard.Copy(text); err != nil {
		m.SetError(fmt.Errorf("copy %s: %w", what, err))
		return nil
	}
	d.logger().Debug("copied to clipboard", zap.String("module", m.ActiveModule().Slug()), zap.String("what", what))
	m.SetStatus("Copied " + what)
	return m.ShowFlash(f, "copied", core.CopyFlashDuration)
}
