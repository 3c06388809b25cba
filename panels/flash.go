package panels

import (
	"context"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/validate"
)

const (
	flashFile = iota
	flashChip
)

type flashReadInput struct {
	Chip string `validate:"oneof=nor nand eeprom" label:"chip"`
}

type flashWriteInput struct {
	File string `validate:"notblank" label:"flash file"`
	Chip string `validate:"oneof=nor nand eeprom" label:"chip"`
}

// NewFlash reads or writes a flash chip. Both operations share one job, so a
// read cannot start while a write is running.
func NewFlash(d Deps) *ToolPanel {
	p := newToolPanel(core.FlashToolkit, d,
		"Read a chip, or write an image to it.",
		newForm(
			textField("Flash file", "image.bin (needed to write)", ""),
			choiceField("Chip", "nor", "nand", "eeprom"),
		))
	flashBlob := func(res sim.FlashResult) core.Blob {
		title := "Flash read"
		if res.Operation == "write" {
			title = "Flash write"
		}
		return core.Blob{Title: title, Text: res.Text(), Payload: res, Filename: "flash_dump.json", Format: export.JSON}
	}
	p.runs = []toolRun{
		{
			action:  "read-flash",
			verb:    "read",
			working: "Reading flash memory...",
			prepare: func() (core.Work, error) {
				in := flashReadInput{Chip: p.form.choice(flashChip)}
				if err := p.form.check(validate.Struct(in)); err != nil {
					return nil, err
				}
				req := sim.FlashRequest{File: p.form.text(flashFile), Chip: in.Chip}
				tk := p.deps.Toolkit
				return func(ctx context.Context) (core.Blob, error) {
					res, err := tk.ReadFlash(ctx, req)
					if err != nil {
						return core.Blob{}, err
					}
					return flashBlob(res), nil
				}, nil
			},
		},
		{
			action:  "write-flash",
			verb:    "write",
			working: "Writing to flash memory...",
			prepare: func() (core.Work, error) {
				in := flashWriteInput{File: p.form.text(flashFile), Chip: p.form.choice(flashChip)}
				if err := p.form.check(validate.Struct(in)); err != nil {
					return nil, err
				}
				tk := p.deps.Toolkit
				return func(ctx context.Context) (core.Blob, error) {
					res, err := tk.WriteFlash(ctx, sim.FlashRequest{File: in.File, Chip: in.Chip})
					if err != nil {
						return core.Blob{}, err
					}
					return flashBlob(res), nil
				}, nil
			},
		},
	}
	return p
}
