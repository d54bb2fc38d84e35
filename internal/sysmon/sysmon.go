// Package sysmon samples host-wide CPU and memory usage for the dashboard's
// load readout.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one host-wide usage sample, in percent.
type Stats struct {
	CPUPercent float64
	MemPercent float64
}

// Sample reads CPU usage since the previous call and the current memory
// usage. Fields that cannot be read are left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = clampPercent(vm.UsedPercent)
	}
	return s
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
