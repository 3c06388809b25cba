package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VStack splits the height between its children by Ratios (equal when the
// ratio count does not match) with Spacing blank lines between them.
type VStack struct {
	Widgets []Widget
	Spacing int
	Ratios  []float64
}

func (v VStack) Render(width, height int) string {
	n := len(v.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gaps := max(0, v.Spacing*(n-1))
	sizes := splitSizes(max(1, height-gaps), n, v.Ratios)
	var b strings.Builder
	for i, w := range v.Widgets {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat("\n", max(0, v.Spacing)))
		}
		rows := max(1, sizes[i])
		b.WriteString(strings.Join(fitLines(w.Render(width, rows), rows), "\n"))
	}
	return b.String()
}

// HStack places children side by side, each column padded to its share.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Gap     int
}

func (h HStack) Render(width, height int) string {
	n := len(h.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gaps := max(0, h.Gap*(n-1))
	sizes := splitSizes(max(1, width-gaps), n, h.Ratios)
	cols := make([][]string, n)
	rows := 0
	for i, w := range h.Widgets {
		cols[i] = strings.Split(w.Render(max(1, sizes[i]), height), "\n")
		rows = max(rows, len(cols[i]))
	}
	sep := strings.Repeat(" ", max(0, h.Gap))
	out := make([]string, rows)
	for r := range out {
		cells := make([]string, n)
		for i, col := range cols {
			cell := ""
			if r < len(col) {
				cell = col[r]
			}
			cells[i] = padRight(cell, sizes[i])
		}
		out[r] = strings.Join(cells, sep)
	}
	return strings.Join(out, "\n")
}

// Fixed pins a child to an exact height inside a VStack by returning it padded.
type Fixed struct {
	Widget Widget
	Height int
}

func (f Fixed) Render(width, height int) string {
	h := min(f.Height, height)
	if f.Widget == nil || h <= 0 {
		return ""
	}
	return strings.Join(fitLines(f.Widget.Render(width, h), h), "\n")
}

// splitSizes divides total by weight, flooring each share and handing the
// remainder out one cell at a time from the first child.
func splitSizes(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	weights := make([]float64, n)
	sum := 0.0
	for i := range weights {
		weights[i] = 1
		if len(ratios) == n && ratios[i] > 0 {
			weights[i] = ratios[i]
		}
		sum += weights[i]
	}
	out := make([]int, n)
	used := 0
	for i, w := range weights {
		out[i] = int(w / sum * float64(total))
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

func fitLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
