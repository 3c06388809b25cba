package panels

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/widgets"
)

var errNoToolkit = errors.New("hardware toolkit unavailable")

// toolRun binds a key action to the work it starts. prepare validates the
// form and returns the work, or the validation error.
type toolRun struct {
	action  string
	verb    string
	working string
	prepare func() (core.Work, error)
}

// ToolPanel is the shape every hardware toolkit module shares: a form, one
// simulated job at a time and an output pane that can be copied or exported.
type ToolPanel struct {
	id     core.ModuleID
	deps   Deps
	intro  string
	form   *form
	job    core.Action
	runs   []toolRun
	copied core.Flash
	// visual draws extra output under the text, such as a chart.
	visual func(core.Blob) widgets.Widget
}

func newToolPanel(id core.ModuleID, d Deps, intro string, f *form) *ToolPanel {
	return &ToolPanel{
		id:     id,
		deps:   d,
		intro:  intro,
		form:   f,
		job:    core.Action{Name: id.Slug()},
		copied: core.Flash{Key: "copy"},
	}
}

func (p *ToolPanel) ID() core.ModuleID           { return p.id }
func (p *ToolPanel) Title() string               { return p.id.Title() }
func (p *ToolPanel) Scope() string               { return p.form.scope(scopeOf(p.id)) }
func (p *ToolPanel) Capturing() bool             { return p.form.editing }
func (p *ToolPanel) Busy() bool                  { return p.job.Pending() }
func (p *ToolPanel) Mount(m *core.Model) tea.Cmd { return nil }
func (p *ToolPanel) Unmount(m *core.Model)       {}

// Result is the last finished job's output.
func (p *ToolPanel) Result() (core.Blob, bool) { return p.job.Result() }

func (p *ToolPanel) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.ActionResultMsg:
		if !p.job.Settle(msg) {
			return nil
		}
		log := p.deps.logger().With(zap.String("module", p.id.Slug()), zap.Duration("elapsed", msg.Elapsed))
		if err := p.job.Err(); err != nil {
			log.Warn("job failed", zap.Error(err))
			m.SetError(fmt.Errorf("%s: %w", strings.ToLower(p.Title()), err))
			return nil
		}
		blob, _ := p.job.Result()
		log.Info("job finished", zap.String("result", blob.Title))
		m.SetStatus(blob.Title + " complete")
	case core.FlashExpiredMsg:
		p.copied.Expire(msg)
	case tea.KeyMsg:
		return p.handleKey(m, msg)
	}
	return nil
}

func (p *ToolPanel) handleKey(m *core.Model, msg tea.KeyMsg) tea.Cmd {
	if p.form.editing {
		_, cmd := p.form.handle(m, msg)
		return cmd
	}
	for _, run := range p.runs {
		if m.Is(msg, run.action) {
			return p.start(m, run)
		}
	}
	switch {
	case m.Is(msg, "copy"):
		blob, ok := p.job.Result()
		if !ok {
			m.SetStatus("Nothing to copy yet")
			return nil
		}
		return copyText(m, p.deps, &p.copied, "output", blob.Text)
	case m.Is(msg, "export"):
		p.export(m)
		return nil
	}
	_, cmd := p.form.handle(m, msg)
	return cmd
}

func (p *ToolPanel) start(m *core.Model, run toolRun) tea.Cmd {
	if p.job.Pending() {
		return nil
	}
	if p.deps.Toolkit == nil {
		m.SetError(errNoToolkit)
		return nil
	}
	work, err := run.prepare()
	if err != nil {
		m.SetError(err)
		return nil
	}
	m.SetStatus(run.working)
	return m.Run(&p.job, work)
}

func (p *ToolPanel) export(m *core.Model) {
	blob, ok := p.job.Result()
	exportBlob(m, p.deps, blob, ok)
}

// Commands puts each job and the export on the command palette.
func (p *ToolPanel) Commands() []core.Command {
	scopes := []string{scopeOf(p.id)}
	busy := func(*core.Model) (bool, string) {
		if p.job.Pending() {
			return true, "already running"
		}
		return false, ""
	}
	cmds := make([]core.Command, 0, len(p.runs)+1)
	for _, run := range p.runs {
		cmds = append(cmds, core.Command{
			ID:          p.id.Slug() + "." + run.action,
			Name:        p.Title() + ": " + run.verb,
			Description: run.working,
			Scopes:      scopes,
			Execute:     func(m *core.Model) tea.Cmd { return p.start(m, run) },
			Disabled:    busy,
		})
	}
	return append(cmds, core.Command{
		ID:          p.id.Slug() + ".export",
		Name:        "Export results",
		Description: p.Title() + " output",
		Scopes:      scopes,
		Execute: func(m *core.Model) tea.Cmd {
			p.export(m)
			return nil
		},
		Disabled: func(*core.Model) (bool, string) {
			if _, ok := p.job.Result(); !ok {
				return true, "no result yet"
			}
			return false, ""
		},
	})
}

func (p *ToolPanel) output(m *core.Model) string {
	switch p.job.State() {
	case core.ActionPending:
		return m.Spinner() + " Working..."
	case core.ActionRejected:
		return "Failed: " + p.job.Err().Error()
	case core.ActionResolved:
		blob, _ := p.job.Result()
		if p.copied.Active() {
			return "(" + p.copied.Text() + ")\n" + blob.Text
		}
		return blob.Text
	default:
		return "Results will appear here."
	}
}

func (p *ToolPanel) hint(m *core.Model) string {
	hints := make([]string, 0, len(p.runs)+2)
	for _, run := range p.runs {
		if keys := m.Keys().KeysFor(run.action, scopeOf(p.id)); len(keys) > 0 {
			hints = append(hints, keys[0]+" "+run.verb)
		}
	}
	if _, ok := p.job.Result(); ok {
		hints = append(hints, "c copy", "e export")
	}
	return strings.Join(hints, " · ")
}

func (p *ToolPanel) Build(m *core.Model) widgets.Widget {
	fields := p.form.widget()
	busy := p.Busy()
	out := p.output(m)
	hint := p.hint(m)
	input := widgets.Func(func(width, height int) string {
		content := p.intro + "\n\n" + fields.Render(max(1, width-4), len(fields)*2)
		if p.form.invalid != "" {
			content += "\n\n! " + p.form.invalid
		}
		return widgets.Pane{Title: p.Title(), Content: content, Active: !busy, Hint: hint}.Render(width, height)
	})
	results := widgets.Widget(widgets.Pane{Title: "Output", Content: out, Busy: busy})
	if blob, ok := p.job.Result(); ok && p.visual != nil {
		results = widgets.VStack{
			Widgets: []widgets.Widget{results, p.visual(blob)},
			Ratios:  []float64{0.5, 0.5},
		}
	}
	return widgets.VStack{Widgets: []widgets.Widget{input, results}, Ratios: []float64{0.4, 0.6}}
}
