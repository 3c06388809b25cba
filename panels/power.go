package panels

import (
	"context"
	"strconv"
	"time"

	"github.com/jask/aegisdeck/core"
	"github.com/jask/aegisdeck/internal/export"
	"github.com/jask/aegisdeck/internal/sim"
	"github.com/jask/aegisdeck/internal/validate"
	"github.com/jask/aegisdeck/widgets"
)

const (
	powerDuration = iota
	powerRate
)

type powerInput struct {
	Duration   int `validate:"min=5,max=300" label:"duration"`
	SampleRate int `validate:"oneof=10 50 100" label:"sample rate"`
}

// NewPowerAudit samples supply power and charts it.
func NewPowerAudit(d Deps) *ToolPanel {
	p := newToolPanel(core.PowerAudit, d,
		"Measure power draw for 5-300 seconds.",
		newForm(
			textField("Duration", "seconds", "30"),
			choiceField("Sample rate", "10", "50", "100"),
		))
	p.runs = []toolRun{{
		action:  "run",
		verb:    "audit",
		working: "Power audit running...",
		prepare: func() (core.Work, error) {
			rate, _ := strconv.Atoi(p.form.choice(powerRate))
			in := powerInput{Duration: p.form.number(powerDuration), SampleRate: rate}
			if err := p.form.check(validate.Struct(in)); err != nil {
				return nil, err
			}
			tk := p.deps.Toolkit
			return func(ctx context.Context) (core.Blob, error) {
				res, err := tk.AuditPower(ctx, sim.PowerRequest{Duration: in.Duration, SampleRate: in.SampleRate})
				if err != nil {
					return core.Blob{}, err
				}
				return core.Blob{
					Title:    "Power audit",
					Text:     res.Text(),
					Payload:  res,
					Filename: "power_audit.csv",
					Format:   export.CSV,
				}, nil
			}, nil
		},
	}}
	p.visual = powerChart
	return p
}

// maxChartPoints bounds the plotted series; longer audits are averaged into
// buckets.
const maxChartPoints = 240

func powerChart(b core.Blob) widgets.Widget {
	res, ok := b.Payload.(sim.PowerResult)
	if !ok || len(res.Samples) == 0 {
		return widgets.Text("")
	}
	bucket := (len(res.Samples) + maxChartPoints - 1) / maxChartPoints
	values := make([]float64, 0, maxChartPoints)
	for start := 0; start < len(res.Samples); start += bucket {
		window := res.Samples[start:min(start+bucket, len(res.Samples))]
		sum := 0
		for _, s := range window {
			sum += s.Power
		}
		values = append(values, float64(sum)/float64(len(window)))
	}
	step := time.Second * time.Duration(bucket) / time.Duration(max(1, res.SampleRate))
	chart := widgets.SeriesChart{Values: values, Step: step}
	return widgets.Func(func(width, height int) string {
		return widgets.Pane{Title: "Power (mW)", Content: chart.Render(max(1, width-4), max(1, height-2))}.Render(width, height)
	})
}
