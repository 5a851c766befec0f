// ABOUTME: Host resource sampler backed by gopsutil
// ABOUTME: Reports CPU and memory utilisation alongside progress snapshots

package progress

import (
	"fmt"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostStats is a single host resource reading.
type HostStats struct {
	CPUPercent        float64
	MemoryUsedPercent float64
}

// Sampler reads host resource usage.
type Sampler interface {
	Sample() (HostStats, error)
}

// HostSampler samples system-wide CPU and memory usage.
type HostSampler struct{}

// NewHostSampler creates a gopsutil-backed sampler.
func NewHostSampler() *HostSampler {
	return &HostSampler{}
}

// Sample returns CPU usage since the previous call and current memory usage.
// It does not block.
func (s *HostSampler) Sample() (HostStats, error) {
	var stats HostStats

	percents, err := cpu.Percent(0, false)
	if err != nil {
		return stats, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return stats, fmt.Errorf("failed to read memory usage: %w", err)
	}
	stats.MemoryUsedPercent = vm.UsedPercent

	return stats, nil
}
