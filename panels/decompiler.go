package panels

import (
	"context"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/validate"
)

const (
	decompileFile = iota
	decompileArch
)

type decompileInput struct {
	File string `validate:"notblank" label:"firmware file"`
	Arch string `validate:"oneof=arm x86 x64 mips" label:"architecture"`
}

// NewDecompiler analyzes a firmware image for one architecture.
func NewDecompiler(d Deps) *ToolPanel {
	p := newToolPanel(core.Decompiler, d,
		"Load a firmware image and pick its architecture.",
		newForm(
			textField("Firmware file", "firmware.bin", ""),
			choiceField("Architecture", "arm", "x86", "x64", "mips"),
		))
	p.runs = []toolRun{{
		action:  "run",
		verb:    "decompile",
		working: "Analyzing firmware...",
		prepare: func() (core.Work, error) {
			in := decompileInput{File: p.form.text(decompileFile), Arch: p.form.choice(decompileArch)}
			if err := p.form.check(validate.Struct(in)); err != nil {
				return nil, err
			}
			tk := p.deps.Toolkit
			return func(ctx context.Context) (core.Blob, error) {
				res, err := tk.Decompile(ctx, sim.DecompileRequest{File: in.File, Arch: in.Arch})
				if err != nil {
					return core.Blob{}, err
				}
				return core.Blob{
					Title:    "Decompilation",
					Text:     res.Text(),
					Payload:  res,
					Filename: "decompile_results.json",
					Format:   export.JSON,
				}, nil
			}, nil
		},
	}}
	return p
}
