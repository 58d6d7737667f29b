package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rnafold/internal/format"
)

// sparklineLabelWidth is the room taken by "CPU 100.0% " before a sparkline.
const sparklineLabelWidth = 16

// MetricsModel shows runtime memory, fold speed and system usage.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	tableBytes   uint64
	progress     float64
	speed        float64 // progress per second, smoothed
	lastProgress float64
	lastUpdate   time.Time
	eta          time.Duration

	cpuHistory *RingBuffer
	memHistory *RingBuffer

	width  int
	height int
}

// NewMetricsModel creates an empty metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		lastUpdate: time.Now(),
		cpuHistory: NewRingBuffer(32),
		memHistory: NewRingBuffer(32),
	}
}

// SetSize updates dimensions and resizes the sparkline history.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if n := w - 2 - sparklineLabelWidth; n > 0 {
		m.cpuHistory.Resize(n)
		m.memHistory.Resize(n)
	}
}

// UpdateMemStats stores a runtime memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats appends a system sample to the sparklines.
func (m *MetricsModel) UpdateSysStats(cpu, mem float64) {
	m.cpuHistory.Push(cpu)
	m.memHistory.Push(mem)
}

// SetTableBytes records the footprint of the presented table.
func (m *MetricsModel) SetTableBytes(b uint64) { m.tableBytes = b }

// UpdateProgress updates the smoothed speed from the average progress.
// Updates closer than 50ms apart only move the progress value.
func (m *MetricsModel) UpdateProgress(progress float64, eta time.Duration) {
	m.progress = progress
	m.eta = eta
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0.05 {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp / dt
		if m.speed > 0 {
			m.speed = 0.7*m.speed + 0.3*instant
		} else {
			m.speed = instant
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, "  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"),
		metricValueStyle.Render(format.FormatBytes(m.alloc)+" / "+format.FormatBytes(m.heapSys)),
		pipe,
		metricLabelStyle.Render("GC:"),
		metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6)))

	colWidth := max((m.width-6)/2, 0)
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Progress:", fmt.Sprintf("%.1f%%", m.progress*100), colWidth))
	rows.WriteString(formatMetricCol("ETA:", format.FormatETA(m.eta), colWidth))
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Speed:", fmt.Sprintf("%.1f%%/s", m.speed*100), colWidth))
	rows.WriteString(formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth))
	if m.tableBytes > 0 {
		rows.WriteString("\n")
		rows.WriteString(formatMetricCol("Table:", format.FormatBytes(m.tableBytes), colWidth))
	}

	if m.height-2 > 5 && m.cpuHistory.Len() > 0 {
		fmt.Fprintf(&rows, "\n\n  %s %s",
			metricLabelStyle.Render(fmt.Sprintf("CPU %5.1f%%", m.cpuHistory.Last())),
			cpuSparklineStyle.Render(RenderSparkline(m.cpuHistory.Slice())))
		fmt.Fprintf(&rows, "\n  %s %s",
			metricLabelStyle.Render(fmt.Sprintf("MEM %5.1f%%", m.memHistory.Last())),
			memSparklineStyle.Render(RenderSparkline(m.memHistory.Slice())))
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
