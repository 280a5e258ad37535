// Package hoststats abstracts host resource readings (CPU, memory, disk)
// and the simulated external resource count behind small provider
// interfaces so the sampler can be tested with deterministic inputs.
package hoststats

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Provider reads current host resource utilization percentages.
type Provider interface {
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	DiskPercent(ctx context.Context) (float64, error)
}

// HostProvider reads utilization from the local host via gopsutil.
type HostProvider struct {
	// DiskPath is the mount point measured for disk utilization.
	DiskPath string
}

// NewHostProvider returns a provider measuring the root filesystem.
func NewHostProvider() *HostProvider {
	return &HostProvider{DiskPath: "/"}
}

func (p *HostProvider) CPUPercent(ctx context.Context) (float64, error) {
	// Interval 0 compares against the previous call instead of blocking.
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("reading cpu utilization: %w", err)
	}
	if len(percents) == 0 {
		return 0, fmt.Errorf("reading cpu utilization: no samples")
	}
	return percents[0], nil
}

func (p *HostProvider) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading memory utilization: %w", err)
	}
	return vm.UsedPercent, nil
}

func (p *HostProvider) DiskPercent(ctx context.Context) (float64, error) {
	usage, err := disk.UsageWithContext(ctx, p.DiskPath)
	if err != nil {
		return 0, fmt.Errorf("reading disk utilization for %s: %w", p.DiskPath, err)
	}
	return usage.UsedPercent, nil
}
