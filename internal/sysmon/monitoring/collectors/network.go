package collectors

import (
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/errors"
	"sysmon/pkg/logger"
)

// NetworkCollector produces network samples: per-interface traffic
// counters, derived rates, and a connection-state tally.
type NetworkCollector struct {
	logger       *logger.Logger
	lastCounters map[string]domain.NetIOCounters
	lastTime     time.Time
}

// NewNetworkCollector creates a new network metrics collector
func NewNetworkCollector() *NetworkCollector {
	return &NetworkCollector{
		logger: logger.WithField("component", "network-collector"),
	}
}

// Collect gathers one point-in-time network reading. Rate fields are
// absent on the first collection and whenever the elapsed time is not
// positive.
func (c *NetworkCollector) Collect() (*domain.NetworkSample, error) {
	now := time.Now()

	raw, err := net.IOCounters(true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read network I/O counters")
	}

	counters := make(map[string]domain.NetIOCounters, len(raw))
	for _, stat := range raw {
		counters[stat.Name] = domain.NetIOCounters{
			BytesSent:   stat.BytesSent,
			BytesRecv:   stat.BytesRecv,
			PacketsSent: stat.PacketsSent,
			PacketsRecv: stat.PacketsRecv,
			ErrIn:       stat.Errin,
			ErrOut:      stat.Errout,
			DropIn:      stat.Dropin,
			DropOut:     stat.Dropout,
		}
	}

	sample := &domain.NetworkSample{
		SampleMeta:  domain.SampleMeta{Timestamp: now},
		IOCounters:  counters,
		IORates:     c.deriveRates(counters, now),
		Connections: c.countConnections(),
	}

	c.lastCounters = counters
	c.lastTime = now

	return sample, nil
}

// countConnections tallies open sockets by protocol and state. Connection
// enumeration can fail without root; the tally is then left zeroed rather
// than failing the whole sample.
func (c *NetworkCollector) countConnections() domain.ConnectionCounts {
	conns, err := net.Connections("all")
	if err != nil {
		c.logger.Debug("failed to enumerate connections", "error", err)
		return domain.ConnectionCounts{}
	}

	counts := domain.ConnectionCounts{Total: len(conns)}
	for _, conn := range conns {
		switch {
		case conn.Type == syscall.SOCK_STREAM && conn.Family != syscall.AF_UNIX:
			counts.TCP++
		case conn.Type == syscall.SOCK_DGRAM && conn.Family != syscall.AF_UNIX:
			counts.UDP++
		case conn.Family == syscall.AF_UNIX:
			counts.Unix++
		default:
			counts.Other++
		}

		switch conn.Status {
		case "ESTABLISHED":
			counts.Established++
		case "LISTEN":
			counts.Listening++
		}
	}
	return counts
}

// deriveRates computes per-second traffic rates from the previous reading.
// Returns nil when there is no previous reading or dt <= 0.
func (c *NetworkCollector) deriveRates(current map[string]domain.NetIOCounters, now time.Time) map[string]domain.NetIORates {
	if c.lastCounters == nil {
		return nil
	}

	dt := now.Sub(c.lastTime).Seconds()
	if dt <= 0 {
		return nil
	}

	rates := make(map[string]domain.NetIORates)
	for name, counters := range current {
		prev, ok := c.lastCounters[name]
		if !ok {
			continue
		}
		rates[name] = domain.NetIORates{
			BytesSentSec:   float64(counters.BytesSent-prev.BytesSent) / dt,
			BytesRecvSec:   float64(counters.BytesRecv-prev.BytesRecv) / dt,
			PacketsSentSec: float64(counters.PacketsSent-prev.PacketsSent) / dt,
			PacketsRecvSec: float64(counters.PacketsRecv-prev.PacketsRecv) / dt,
		}
	}
	return rates
}
