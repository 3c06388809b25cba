package widgets

import (
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

// SeriesChart plots evenly spaced samples as a braille line chart.
type SeriesChart struct {
	Values []float64
	// Step is the spacing between samples.
	Step time.Duration
	// Origin is the time of the first sample; zero uses the Unix epoch.
	Origin time.Time
}

func (c SeriesChart) Render(width, height int) string {
	if width < 10 || height < 4 || len(c.Values) == 0 {
		return ""
	}
	step := c.Step
	if step <= 0 {
		step = time.Second
	}
	start := c.Origin
	if start.IsZero() {
		start = time.Unix(0, 0)
	}
	end := start.Add(step * time.Duration(max(1, len(c.Values)-1)))

	lo, hi := c.Values[0], c.Values[0]
	for _, v := range c.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1

	chart := tslc.New(width, height)
	chart.SetStyle(lipgloss.NewStyle().Foreground(colorBusy))
	chart.AxisStyle = lipgloss.NewStyle().Foreground(colorBorder)
	chart.LabelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(lo-pad, hi+pad)
	chart.SetViewYRange(lo-pad, hi+pad)
	for i, v := range c.Values {
		chart.Push(tslc.TimePoint{Time: start.Add(step * time.Duration(i)), Value: v})
	}
	chart.DrawBraille()
	return chart.View()
}
