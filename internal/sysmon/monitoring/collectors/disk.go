package collectors

import (
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/errors"
	"sysmon/pkg/logger"
)

// DiskCollector produces disk samples: per-mount usage, per-device I/O
// counters and per-second rates derived from consecutive readings.
type DiskCollector struct {
	logger       *logger.Logger
	lastCounters map[string]domain.DiskIOCounters
	lastTime     time.Time
}

// NewDiskCollector creates a new disk metrics collector
func NewDiskCollector() *DiskCollector {
	return &DiskCollector{
		logger: logger.WithField("component", "disk-collector"),
	}
}

// Collect gathers one point-in-time disk reading. Rate fields are absent
// on the first collection and whenever the elapsed time is not positive.
func (c *DiskCollector) Collect() (*domain.DiskSample, error) {
	now := time.Now()

	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list partitions")
	}

	usage := make([]domain.MountUsage, 0, len(partitions))
	for _, partition := range partitions {
		stat, err := disk.Usage(partition.Mountpoint)
		if err != nil {
			c.logger.Debug("failed to stat mount", "mountpoint", partition.Mountpoint, "error", err)
			continue
		}
		if stat.Total == 0 {
			continue
		}
		usage = append(usage, domain.MountUsage{
			Device:     partition.Device,
			Mountpoint: partition.Mountpoint,
			FSType:     partition.Fstype,
			Total:      stat.Total,
			Used:       stat.Used,
			Free:       stat.Free,
			Percent:    stat.UsedPercent,
		})
	}

	raw, err := disk.IOCounters()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read disk I/O counters")
	}

	counters := make(map[string]domain.DiskIOCounters, len(raw))
	for name, stat := range raw {
		counters[name] = domain.DiskIOCounters{
			ReadCount:  stat.ReadCount,
			WriteCount: stat.WriteCount,
			ReadBytes:  stat.ReadBytes,
			WriteBytes: stat.WriteBytes,
			ReadTime:   stat.ReadTime,
			WriteTime:  stat.WriteTime,
		}
	}

	sample := &domain.DiskSample{
		SampleMeta: domain.SampleMeta{Timestamp: now},
		Usage:      usage,
		IOCounters: counters,
		IORates:    c.deriveRates(counters, now),
	}

	c.lastCounters = counters
	c.lastTime = now

	return sample, nil
}

// deriveRates computes per-second I/O rates from the previous reading.
// Returns nil when there is no previous reading or dt <= 0.
func (c *DiskCollector) deriveRates(current map[string]domain.DiskIOCounters, now time.Time) map[string]domain.DiskIORates {
	if c.lastCounters == nil {
		return nil
	}

	dt := now.Sub(c.lastTime).Seconds()
	if dt <= 0 {
		return nil
	}

	rates := make(map[string]domain.DiskIORates)
	for name, counters := range current {
		prev, ok := c.lastCounters[name]
		if !ok {
			continue
		}
		rates[name] = domain.DiskIORates{
			ReadBytesSec:  float64(counters.ReadBytes-prev.ReadBytes) / dt,
			WriteBytesSec: float64(counters.WriteBytes-prev.WriteBytes) / dt,
			ReadCountSec:  float64(counters.ReadCount-prev.ReadCount) / dt,
			WriteCountSec: float64(counters.WriteCount-prev.WriteCount) / dt,
		}
	}
	return rates
}
