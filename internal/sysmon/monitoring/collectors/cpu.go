package collectors

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"

	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/errors"
	"sysmon/pkg/logger"
)

// CPUCollector produces CPU samples: aggregate and per-core utilization,
// time shares, load averages and kernel scheduler counters.
type CPUCollector struct {
	logger    *logger.Logger
	lastTimes *cpu.TimesStat
}

// NewCPUCollector creates a new CPU metrics collector
func NewCPUCollector() *CPUCollector {
	return &CPUCollector{
		logger: logger.WithField("component", "cpu-collector"),
	}
}

// Collect gathers one point-in-time CPU reading. Utilization percentages
// are computed against the previous call; the first call reports usage
// since boot, which gopsutil handles internally.
func (c *CPUCollector) Collect() (*domain.CPUSample, error) {
	now := time.Now()

	perCPU, err := cpu.Percent(0, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read per-core usage")
	}

	average := 0.0
	for _, pct := range perCPU {
		average += pct
	}
	if len(perCPU) > 0 {
		average /= float64(len(perCPU))
	}

	sample := &domain.CPUSample{
		SampleMeta: domain.SampleMeta{Timestamp: now},
		Usage: domain.CPUUsage{
			Average: average,
			PerCPU:  perCPU,
		},
	}

	times, err := c.readTimeShares()
	if err != nil {
		c.logger.Debug("failed to read CPU time shares", "error", err)
	} else {
		sample.Times = times
	}

	loadAvg, err := ReadLoadAverage(len(perCPU))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read load average")
	}
	sample.LoadAverage = loadAvg

	stats, err := c.readCPUStats()
	if err != nil {
		c.logger.Debug("failed to read scheduler counters", "error", err)
	} else {
		sample.Stats = stats
	}

	return sample, nil
}

// ReadLoadAverage returns the 1/5/15 minute load averages, with the
// 1-minute value additionally normalized per logical CPU.
func ReadLoadAverage(cores int) (domain.LoadAverage, error) {
	avg, err := load.Avg()
	if err != nil {
		return domain.LoadAverage{}, err
	}

	loadAvg := domain.LoadAverage{
		Load1:  avg.Load1,
		Load5:  avg.Load5,
		Load15: avg.Load15,
	}
	if cores > 0 {
		loadAvg.Load1PerCPU = avg.Load1 / float64(cores)
	}
	return loadAvg, nil
}

// readTimeShares converts cumulative CPU times into percentage shares.
func (c *CPUCollector) readTimeShares() (domain.CPUTimes, error) {
	all, err := cpu.Times(false)
	if err != nil {
		return domain.CPUTimes{}, err
	}
	if len(all) == 0 {
		return domain.CPUTimes{}, errors.ErrUnsupportedPlatform
	}

	current := all[0]
	times := domain.CPUTimes{}

	if c.lastTimes != nil {
		user := current.User - c.lastTimes.User
		system := current.System - c.lastTimes.System
		idle := current.Idle - c.lastTimes.Idle
		iowait := current.Iowait - c.lastTimes.Iowait
		steal := current.Steal - c.lastTimes.Steal
		total := user + system + idle + iowait + steal +
			(current.Nice - c.lastTimes.Nice) +
			(current.Irq - c.lastTimes.Irq) +
			(current.Softirq - c.lastTimes.Softirq)

		if total > 0 {
			times.User = user / total * 100.0
			times.System = system / total * 100.0
			times.Idle = idle / total * 100.0
			times.IOWait = iowait / total * 100.0
			times.Steal = steal / total * 100.0
		}
	}

	c.lastTimes = &current
	return times, nil
}

// readCPUStats reads scheduler counters from /proc/stat. gopsutil does not
// expose these, so the file is scanned directly.
func (c *CPUCollector) readCPUStats() (domain.CPUStats, error) {
	file, err := os.Open("/proc/stat")
	if err != nil {
		return domain.CPUStats{}, err
	}
	defer file.Close()

	stats := domain.CPUStats{}
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		switch fields[0] {
		case "ctxt":
			stats.CtxSwitches = parseUint64(fields[1])
		case "intr":
			stats.Interrupts = parseUint64(fields[1])
		case "softirq":
			stats.SoftInterrupts = parseUint64(fields[1])
		}
	}

	return stats, scanner.Err()
}

// parseUint64 safely parses a string to uint64
func parseUint64(s string) uint64 {
	val, _ := strconv.ParseUint(s, 10, 64)
	return val
}
