package panels

import (
	"context"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/validate"
)

const (
	debugTarget = iota
	debugArgs
)

type debugInput struct {
	Target string `validate:"notblank" label:"target binary"`
	Args   string
}

// NewDebugRun executes a binary in the sandbox. Its export is the plain text
// run log.
func NewDebugRun(d Deps) *ToolPanel {
	p := newToolPanel(core.DebugRun, d,
		"Run a target binary in the isolated sandbox.",
		newForm(
			textField("Target binary", "./firmware.elf", ""),
			textField("Arguments", "--verbose", ""),
		))
	p.runs = []toolRun{{
		action:  "run",
		verb:    "run",
		working: "Running binary in sandbox...",
		prepare: func() (core.Work, error) {
			in := debugInput{Target: p.form.text(debugTarget), Args: p.form.text(debugArgs)}
			if err := p.form.check(validate.Struct(in)); err != nil {
				return nil, err
			}
			tk := p.deps.Toolkit
			return func(ctx context.Context) (core.Blob, error) {
				res, err := tk.RunSandbox(ctx, sim.DebugRequest{Target: in.Target, Args: in.Args})
				if err != nil {
					return core.Blob{}, err
				}
				return core.Blob{
					Title:    "Sandbox run",
					Text:     res.Text(),
					Payload:  res.Log(),
					Filename: "debug_log.txt",
					Format:   export.Text,
				}, nil
			}, nil
		},
	}}
	return p
}
