package tui

import (
	"fmt"
	"strings"
)

// sysHistorySize is the number of CPU/memory samples kept for sparklines.
const sysHistorySize = 60

// SysModel renders system-wide CPU and memory sparklines sampled on
// each tick.
type SysModel struct {
	cpu    *RingBuffer
	mem    *RingBuffer
	width  int
	height int
}

// NewSysModel creates the system stats panel.
func NewSysModel() SysModel {
	return SysModel{
		cpu: NewRingBuffer(sysHistorySize),
		mem: NewRingBuffer(sysHistorySize),
	}
}

// SetSize updates the panel dimensions.
func (s *SysModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// AddSample records a CPU/memory sample.
func (s *SysModel) AddSample(cpuPercent, memPercent float64) {
	s.cpu.Push(cpuPercent)
	s.mem.Push(memPercent)
}

// Reset clears the sample history.
func (s *SysModel) Reset() {
	s.cpu.Reset()
	s.mem.Reset()
}

// View renders the system stats panel.
func (s SysModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SYSTEM"))
	b.WriteString("\n\n")

	sparkWidth := s.width - 18
	if sparkWidth < 10 {
		sparkWidth = 10
	}

	b.WriteString(fmt.Sprintf("  %s %s %s\n",
		metricLabelStyle.Render("CPU"),
		cpuSparklineStyle.Render(RenderSparkline(lastN(s.cpu.Slice(), sparkWidth))),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", s.cpu.Last())),
	))
	b.WriteString(fmt.Sprintf("  %s %s %s\n",
		metricLabelStyle.Render("MEM"),
		memSparklineStyle.Render(RenderSparkline(lastN(s.mem.Slice(), sparkWidth))),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", s.mem.Last())),
	))

	content := b.String()
	return panelStyle.Width(maxInt(s.width-2, 0)).Height(maxInt(s.height-2, 0)).Render(content)
}

// lastN returns the final n values of the slice.
func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
