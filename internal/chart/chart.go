// Package chart provides sparkline rendering with color-coded value
// thresholds and minute tick marks for the monitor panels.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/vitals/internal/history"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Scale maps a value onto warning colors. High/Crit at zero disable the
// corresponding band.
type Scale struct {
	High float64
	Crit float64
}

// TempScale is the default coloring for a temperature with no
// tool-reported thresholds.
var TempScale = Scale{High: 85, Crit: 95}

// PercentScale colors a utilization percentage.
var PercentScale = Scale{High: 90, Crit: 98}

// Color returns the color for a value on this scale.
func (s Scale) Color(v float64) lipgloss.Color {
	switch {
	case s.Crit > 0 && v >= s.Crit:
		return lipgloss.Color("196") // red
	case s.High > 0 && v >= s.High:
		return lipgloss.Color("208") // orange
	case s.High > 0 && v >= s.High*0.85:
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

// RenderSparklinePoints renders a sparkline of the points, scaled to
// [rangeMin, rangeMax], with a subtle pipe at each minute boundary.
// Missing leading width is padded with a dashed baseline.
func RenderSparklinePoints(points []history.Point, width int, rangeMin, rangeMax float64, scale Scale) string {
	if width <= 0 {
		return ""
	}

	if len(points) == 0 {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	tickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	for i, p := range points {
		norm := (p.Value - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}

		if isMinuteTick(points, i) {
			sb.WriteString(tickStyle.Render("│"))
			continue
		}

		ch := string(sparkBlocks[idx])
		style := lipgloss.NewStyle().Foreground(scale.Color(p.Value))
		if scale.Crit > 0 && p.Value >= scale.Crit {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(ch))
	}

	return sb.String()
}

func isMinuteTick(points []history.Point, i int) bool {
	p := points[i]
	if p.Time.IsZero() {
		return false
	}
	if p.Time.Second() == 0 {
		return true
	}
	return i > 0 && !points[i-1].Time.IsZero() && p.Time.Minute() != points[i-1].Time.Minute()
}

// RenderTimeline renders the time labels under a sparkline, showing
// HH:MM at each minute tick position.
func RenderTimeline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	type tick struct {
		pos   int
		label string
	}
	var ticks []tick

	for i, p := range points {
		if isMinuteTick(points, i) {
			ticks = append(ticks, tick{pos: padLen + i, label: p.Time.Format("15:04")})
		}
	}

	lastEnd := -1
	for _, t := range ticks {
		start := t.pos - 2
		if start < 0 {
			start = 0
		}
		end := start + len(t.label)
		if end > width {
			continue
		}
		if start <= lastEnd+1 {
			continue
		}
		for j, ch := range t.label {
			line[start+j] = ch
		}
		lastEnd = end
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Render(string(line))
}

// RenderValue renders a current value with color coding, right-padded
// to a stable width, e.g. " 62°C" or "  30%".
func RenderValue(v float64, unit string, scale Scale) string {
	s := fmt.Sprintf("%5.1f%s", v, unit)
	style := lipgloss.NewStyle().Foreground(scale.Color(v))
	if scale.Crit > 0 && v >= scale.Crit {
		style = style.Bold(true)
	}
	return style.Render(s)
}
