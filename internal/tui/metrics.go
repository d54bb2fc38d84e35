package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/puzzlebook/internal/format"
)

// heapHistory is the number of heap samples kept for the sparkline.
const heapHistory = 60

// MetricsModel displays runtime memory metrics, host load and a heap
// sparkline.
type MetricsModel struct {
	heapAlloc    uint64
	heapSys      uint64
	heapObjects  uint64
	numGC        uint32
	gcPause      time.Duration
	numGoroutine int
	cpuPercent   float64
	memPercent   float64
	heap         *RingBuffer
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{heap: NewRingBuffer(heapHistory)}
}

// SetSize updates dimensions. The sparkline keeps as many samples as fit.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if n := w - 16; n > 0 {
		m.heap.Resize(n)
	}
}

// UpdateMemStats records a memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.heapAlloc = msg.HeapAlloc
	m.heapSys = msg.HeapSys
	m.heapObjects = msg.HeapObjects
	m.numGC = msg.NumGC
	m.gcPause = msg.GCPause
	m.numGoroutine = msg.Goroutines
	m.heap.Push(float64(msg.HeapAlloc))
}

// UpdateSysStats records a host-wide CPU and memory sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpuPercent = msg.CPUPercent
	m.memPercent = msg.MemPercent
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	heapStr := metricValueStyle.Render(format.FormatBytes(m.heapAlloc) + " / " + format.FormatBytes(m.heapSys))
	gcStr := metricValueStyle.Render(fmt.Sprintf("%d (%s)", m.numGC, format.FormatExecutionDuration(m.gcPause)))
	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, " %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), heapStr,
		pipe,
		metricLabelStyle.Render("GC:"), gcStr)

	colWidth := max((m.width-4)/4, 0)
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth))
	rows.WriteString(formatMetricCol("Objects:", fmt.Sprintf("%d", m.heapObjects), colWidth))
	rows.WriteString(formatMetricCol("CPU:", fmt.Sprintf("%.1f%%", m.cpuPercent), colWidth))
	rows.WriteString(formatMetricCol("Host mem:", fmt.Sprintf("%.1f%%", m.memPercent), colWidth))

	rows.WriteString("\n ")
	rows.WriteString(metricLabelStyle.Render(fmt.Sprintf("%-12s", "Heap trend:")))
	rows.WriteString(" ")
	rows.WriteString(sparklineStyle.Render(RenderSparkline(m.heap.Normalized())))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
