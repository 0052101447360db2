package collectors

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/errors"
	"sysmon/pkg/logger"
)

// SystemCollector produces the composite top-line reading: aggregate CPU
// and memory usage, load, per-mount disk percentages, process count and
// uptime. It is the source for the "system" category and for on-demand
// status snapshots.
type SystemCollector struct {
	logger *logger.Logger
}

// NewSystemCollector creates a new composite system metrics collector
func NewSystemCollector() *SystemCollector {
	return &SystemCollector{
		logger: logger.WithField("component", "system-collector"),
	}
}

// Collect gathers one composite system reading.
func (c *SystemCollector) Collect() (*domain.SystemSample, error) {
	now := time.Now()

	usage, err := cpu.Percent(0, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CPU usage")
	}
	cpuUsage := 0.0
	if len(usage) > 0 {
		cpuUsage = usage[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read virtual memory")
	}

	cores, err := cpu.Counts(true)
	if err != nil || cores < 1 {
		cores = 1
	}
	loadAvg, err := ReadLoadAverage(cores)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read load average")
	}

	sample := &domain.SystemSample{
		SampleMeta:      domain.SampleMeta{Timestamp: now},
		CPUUsage:        cpuUsage,
		MemoryUsage:     vm.UsedPercent,
		MemoryAvailable: vm.Available,
		LoadAverage:     loadAvg,
		DiskUsage:       c.mountPercents(),
		ProcessCount:    c.processCount(),
	}

	if bootTime, err := host.BootTime(); err == nil {
		sample.BootTime = time.Unix(int64(bootTime), 0)
		sample.Uptime = now.Sub(sample.BootTime)
	} else {
		c.logger.Debug("failed to read boot time", "error", err)
	}

	return sample, nil
}

// mountPercents reduces mounted filesystems to (mountpoint, percent) pairs.
func (c *SystemCollector) mountPercents() []domain.MountPercent {
	partitions, err := disk.Partitions(false)
	if err != nil {
		c.logger.Debug("failed to list partitions", "error", err)
		return nil
	}

	var mounts []domain.MountPercent
	for _, partition := range partitions {
		stat, err := disk.Usage(partition.Mountpoint)
		if err != nil || stat.Total == 0 {
			continue
		}
		mounts = append(mounts, domain.MountPercent{
			Mountpoint: partition.Mountpoint,
			Percent:    stat.UsedPercent,
		})
	}
	return mounts
}

// processCount returns the number of live processes, zero if enumeration
// fails.
func (c *SystemCollector) processCount() int {
	pids, err := process.Pids()
	if err != nil {
		c.logger.Debug("failed to enumerate processes", "error", err)
		return 0
	}
	return len(pids)
}
