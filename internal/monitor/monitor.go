// Package monitor implements the live vitals TUI using BubbleTea: one
// bordered panel per metric group with current values and sparklines.
// It consumes snapshots read-only; all probing happens in the collector.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/vitals/internal/chart"
	"github.com/luki/vitals/internal/history"
	"github.com/luki/vitals/internal/metric"
	"github.com/luki/vitals/internal/poll"
)

const historySize = 300 // 5 minutes at the 1s interval

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg struct {
	snap poll.Snapshot
}

// fatalMsg carries the one unrecoverable failure (RAM query).
type fatalMsg struct{ err error }

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the live monitor.
type Model struct {
	collector *poll.Collector
	snap      poll.Snapshot
	hasSnap   bool
	history   *history.Store
	fatal     error
	width     int
	height    int
	scroll    int
	startTime time.Time
	paused    bool
}

// New creates the initial model around a collector.
func New(c *poll.Collector) Model {
	return Model{
		collector: c,
		history:   history.NewStore(historySize),
		startTime: time.Now(),
	}
}

// Err returns the fatal error that ended the session, if any.
func (m Model) Err() error { return m.fatal }

// ── Commands ─────────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(poll.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// collectCmd runs one tick off the update loop. The next tick is only
// scheduled once the snapshot lands, so collections never overlap and
// at most one child process is in flight.
func (m Model) collectCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.collector.Collect(context.Background())
		if err != nil {
			return fatalMsg{err}
		}
		return snapshotMsg{snap: snap}
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return m.collectCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, tickCmd()
		}
		return m, m.collectCmd()

	case snapshotMsg:
		m.snap = msg.snap
		m.hasSnap = true
		m.record(msg.snap)
		return m, tickCmd()

	case fatalMsg:
		m.fatal = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// record pushes every valid reading into the sparkline trace. N/A
// readings leave a gap rather than recording a bogus zero.
func (m *Model) record(s poll.Snapshot) {
	for _, r := range []metric.Reading{s.CPUTemp, s.CPUUsage, s.GPUTemp, s.GPUUsage, s.RAM} {
		if r.Valid {
			m.history.Record(r.Metric.String(), r.Value, s.Time)
		}
	}
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorPanel    = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorWarn     = lipgloss.Color("220")
	colorHigh     = lipgloss.Color("208")
	colorCrit     = lipgloss.Color("196")
	colorPaused   = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string

	sections = append(sections, m.renderTitleBar(contentWidth))

	if !m.hasSnap {
		waiting := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Probing hardware...")
		sections = append(sections, waiting)
	} else {
		sections = append(sections, m.renderPanels(contentWidth)...)
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}

	start := m.scroll
	end := start + visibleLines
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("VITALS")

	var statusParts []string

	uptime := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime))))
	statusParts = append(statusParts, uptime)

	if m.hasSnap {
		ts := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(m.snap.Time.Format("15:04:05"))
		statusParts = append(statusParts, ts)
	}

	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	sep := lipgloss.NewStyle().Foreground(colorDim).Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

// row describes one metric line inside a panel.
type row struct {
	label   string
	reading metric.Reading
	scale   chart.Scale
	note    string // extra text after the stats, e.g. RAM totals or provenance
}

func (m Model) renderPanels(totalWidth int) []string {
	s := m.snap

	cpu := []row{
		{label: "Temp", reading: s.CPUTemp, scale: chart.TempScale},
		{label: "Usage", reading: s.CPUUsage, scale: chart.PercentScale},
	}
	gpu := []row{
		{label: "Temp", reading: s.GPUTemp, scale: chart.TempScale, note: provenance(s.GPUTemp)},
		{label: "Usage", reading: s.GPUUsage, scale: chart.PercentScale, note: provenance(s.GPUUsage)},
	}
	ram := []row{
		{label: "Usage", reading: s.RAM, scale: chart.PercentScale,
			note: fmt.Sprintf("%.1f GB / %.1f GB", gb(s.RAMUsedBytes), gb(s.RAMTotalBytes))},
	}

	return []string{
		m.renderPanel("CPU", cpu, totalWidth),
		m.renderPanel("GPU", gpu, totalWidth),
		m.renderPanel("RAM", ram, totalWidth),
	}
}

func provenance(r metric.Reading) string {
	if !r.Valid {
		return ""
	}
	return "via " + r.Source.String()
}

func (m Model) renderPanel(title string, rows []row, totalWidth int) string {
	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	chartWidth := innerWidth - 52
	if chartWidth < 15 {
		chartWidth = 15
	}
	if chartWidth > 140 {
		chartWidth = 140
	}

	labelW := 7
	valueW := 8

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")

	var lines []string

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPanel).
		Render(title)
	lines = append(lines, header)

	var lastPts []history.Point

	for _, r := range rows {
		label := lipgloss.NewStyle().
			Foreground(colorLabel).
			Width(labelW).
			Render(r.label)

		var value string
		if r.reading.Valid {
			value = lipgloss.NewStyle().
				Width(valueW).
				Align(lipgloss.Right).
				Render(chart.RenderValue(r.reading.Value, r.reading.Unit, r.scale))
		} else {
			value = lipgloss.NewStyle().
				Width(valueW).
				Align(lipgloss.Right).
				Foreground(colorDim).
				Render("N/A")
		}

		hist := m.history.Get(r.reading.Metric.String())

		var spark, stats string
		if hist != nil {
			rangeMin, rangeMax := chartRange(hist, r.scale)
			pts := hist.LastNPoints(chartWidth)
			lastPts = pts
			spark = chart.RenderSparklinePoints(pts, chartWidth, rangeMin, rangeMax, r.scale)
			stats = dimS.Render(" avg") + valS.Render(fmt.Sprintf("%5.1f", hist.Avg())) +
				dimS.Render(" lo") + valS.Render(fmt.Sprintf("%5.1f", hist.Min)) +
				dimS.Render(" pk") + valS.Render(fmt.Sprintf("%5.1f", hist.Peak))
		} else {
			spark = chart.RenderSparklinePoints(nil, chartWidth, 0, 1, r.scale)
		}

		line := label + " " + value + " " + frameL + spark + frameR + stats
		if r.note != "" {
			line += dimS.Render("  " + r.note)
		}
		lines = append(lines, line)
	}

	if lastPts != nil {
		timeline := chart.RenderTimeline(lastPts, chartWidth)
		if strings.TrimSpace(timeline) != "" {
			pad := strings.Repeat(" ", labelW+valueW+2)
			lines = append(lines, pad+timeline)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(content)
}

// chartRange picks the sparkline's vertical range: the observed span
// with margin for temperatures, the full 0-100 for percentages.
func chartRange(hist *history.Buffer, scale chart.Scale) (float64, float64) {
	if scale == chart.PercentScale {
		return 0, 100
	}
	rangeMin := hist.Min - 5
	if rangeMin < 0 {
		rangeMin = 0
	}
	rangeMax := hist.Peak + 5
	if scale.Crit > rangeMax {
		rangeMax = scale.Crit + 5
	}
	return rangeMin, rangeMax
}

func (m Model) renderFooter(width int) string {
	okS := lipgloss.NewStyle().Foreground(colorOk).Render("██")
	warnS := lipgloss.NewStyle().Foreground(colorWarn).Render("██")
	highS := lipgloss.NewStyle().Foreground(colorHigh).Render("██")
	critS := lipgloss.NewStyle().Foreground(colorCrit).Render("██")
	tickS := lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Render("│")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	legend := okS + dimS.Render(" ok ") +
		warnS + dimS.Render(" warm ") +
		highS + dimS.Render(" high ") +
		critS + dimS.Render(" crit ") +
		tickS + dimS.Render(" 1min")

	keys := dimS.Render("q") + lipgloss.NewStyle().Foreground(colorLabel).Render(":quit") +
		dimS.Render("  j/k") + lipgloss.NewStyle().Foreground(colorLabel).Render(":scroll") +
		dimS.Render("  p") + lipgloss.NewStyle().Foreground(colorLabel).Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + filler + keys)
}

func gb(b uint64) float64 { return float64(b) / (1 << 30) }

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
