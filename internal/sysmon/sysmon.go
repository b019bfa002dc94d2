// Package sysmon samples system-wide CPU and memory usage for the dashboard
// resource panel.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one resource usage snapshot. Percentages are 0..100.
type Stats struct {
	CPUPercent float64
	MemPercent float64
}

// Sample takes a system-wide CPU and memory snapshot. CPU usage is the delta
// since the previous call (interval 0). Sampling errors yield zero values;
// the panel renders a flat line instead of failing.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	return s
}
