// Package sysmon samples system-wide CPU and memory usage for the dashboard.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one system-wide snapshot. Percentages are in 0..100.
type Stats struct {
	CPUPercent   float64
	MemPercent   float64
	MemAvailable uint64
}

// Sampler produces a snapshot.
type Sampler func() Stats

// Sample reads CPU usage since the previous call and the current memory
// usage. Fields that cannot be read stay zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemAvailable = vm.Available
	}
	return s
}
