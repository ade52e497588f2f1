// Package sysmon samples system-wide CPU and memory usage for the verbose
// execution banner.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemTotal   uint64  // bytes
}

// Sampler reads CPU and memory usage. The zero value is not usable; use
// NewSampler.
type Sampler struct {
	cpuPercent func(ctx context.Context) ([]float64, error)
	virtualMem func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// NewSampler returns a Sampler backed by gopsutil.
func NewSampler() *Sampler {
	return &Sampler{
		cpuPercent: func(ctx context.Context) ([]float64, error) {
			return cpu.PercentWithContext(ctx, 0, false)
		},
		virtualMem: mem.VirtualMemoryWithContext,
	}
}

// Sample collects a single system-wide snapshot. CPU uses interval=0 (delta
// since the previous call). Fields that cannot be read stay zero.
func (s *Sampler) Sample(ctx context.Context) Stats {
	var st Stats
	if pcts, err := s.cpuPercent(ctx); err == nil && len(pcts) > 0 {
		st.CPUPercent = pcts[0]
	}
	if vmem, err := s.virtualMem(ctx); err == nil && vmem != nil {
		st.MemPercent = vmem.UsedPercent
		st.MemTotal = vmem.Total
	}
	return st
}
