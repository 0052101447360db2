package collectors

import (
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/errors"
)

// MemoryCollector produces memory samples covering physical memory and swap.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory metrics collector
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Collect gathers one point-in-time memory reading.
func (c *MemoryCollector) Collect() (*domain.MemorySample, error) {
	now := time.Now()

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read virtual memory")
	}

	swap, err := mem.SwapMemory()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read swap memory")
	}

	return &domain.MemorySample{
		SampleMeta: domain.SampleMeta{Timestamp: now},
		Memory: domain.MemoryInfo{
			Total:     vm.Total,
			Available: vm.Available,
			Used:      vm.Used,
			Free:      vm.Free,
			Percent:   vm.UsedPercent,
			Buffers:   vm.Buffers,
			Cached:    vm.Cached,
			Shared:    vm.Shared,
		},
		Swap: domain.SwapInfo{
			Total:   swap.Total,
			Used:    swap.Used,
			Free:    swap.Free,
			Percent: swap.UsedPercent,
			Sin:     swap.Sin,
			Sout:    swap.Sout,
		},
	}, nil
}
