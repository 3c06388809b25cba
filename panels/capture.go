package panels

import (
	"context"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/validate"
)

const (
	captureInterface = iota
	captureDuration
)

type captureInput struct {
	Interface string `validate:"oneof=usb serial spi i2c can" label:"interface"`
	Duration  int    `validate:"min=1,max=300" label:"duration"`
}

// NewCapture sniffs one bus for a number of seconds.
func NewCapture(d Deps) *ToolPanel {
	p := newToolPanel(core.ProtoCapture, d,
		"Pick a bus and how long to listen (1-300 seconds).",
		newForm(
			choiceField("Interface", "usb", "serial", "spi", "i2c", "can"),
			textField("Duration", "seconds", "10"),
		))
	p.runs = []toolRun{{
		action:  "run",
		verb:    "capture",
		working: "Capturing protocol data...",
		prepare: func() (core.Work, error) {
			in := captureInput{Interface: p.form.choice(captureInterface), Duration: p.form.number(captureDuration)}
			if err := p.form.check(validate.Struct(in)); err != nil {
				return nil, err
			}
			tk := p.deps.Toolkit
			return func(ctx context.Context) (core.Blob, error) {
				res, err := tk.Capture(ctx, sim.CaptureRequest{Interface: in.Interface, Duration: in.Duration})
				if err != nil {
					return core.Blob{}, err
				}
				return core.Blob{
					Title:    "Capture",
					Text:     res.Text(),
					Payload:  res,
					Filename: "protocol_capture.json",
					Format:   export.JSON,
				}, nil
			}, nil
		},
	}}
	return p
}
