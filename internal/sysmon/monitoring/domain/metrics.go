package domain

import (
	"time"
)

// Category identifies a metric category. It is the partitioning key for
// both the metric store and the callback registry.
type Category string

const (
	CategoryCPU     Category = "cpu"
	CategoryMemory  Category = "memory"
	CategoryDisk    Category = "disk"
	CategoryNetwork Category = "network"
	CategorySystem  Category = "system"
)

// Categories lists every known metric category in collection order.
func Categories() []Category {
	return []Category{CategoryCPU, CategoryMemory, CategoryDisk, CategoryNetwork, CategorySystem}
}

// SampleMeta carries the fields shared by every metric sample. A sample
// whose collection failed has Error set and category-specific fields zeroed.
type SampleMeta struct {
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Meta returns the shared sample fields.
func (m SampleMeta) Meta() SampleMeta { return m }

// Failed reports whether this sample carries a collection error marker.
func (m SampleMeta) Failed() bool { return m.Error != "" }

// Sample is implemented by all per-category metric samples.
type Sample interface {
	Meta() SampleMeta
	Category() Category
}

// CPUUsage holds aggregate and per-core CPU utilization percentages.
type CPUUsage struct {
	Average float64   `json:"average"`
	PerCPU  []float64 `json:"per_cpu"`
}

// CPUTimes holds the share of CPU time spent in each state, in percent.
type CPUTimes struct {
	User   float64 `json:"user"`
	System float64 `json:"system"`
	Idle   float64 `json:"idle"`
	IOWait float64 `json:"iowait"`
	Steal  float64 `json:"steal"`
}

// LoadAverage holds the 1/5/15 minute load averages plus the 1-minute
// value normalized per logical CPU.
type LoadAverage struct {
	Load1       float64 `json:"1min"`
	Load5       float64 `json:"5min"`
	Load15      float64 `json:"15min"`
	Load1PerCPU float64 `json:"1min_per_cpu"`
}

// CPUStats holds kernel scheduler counters from /proc/stat.
type CPUStats struct {
	CtxSwitches    uint64 `json:"ctx_switches"`
	Interrupts     uint64 `json:"interrupts"`
	SoftInterrupts uint64 `json:"soft_interrupts"`
	Syscalls       uint64 `json:"syscalls"`
}

// CPUSample is one point-in-time CPU reading.
type CPUSample struct {
	SampleMeta
	Usage       CPUUsage    `json:"usage"`
	Times       CPUTimes    `json:"times"`
	LoadAverage LoadAverage `json:"load_average"`
	Stats       CPUStats    `json:"stats"`
}

func (CPUSample) Category() Category { return CategoryCPU }

// MemoryInfo holds physical memory usage in bytes.
type MemoryInfo struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Used      uint64  `json:"used"`
	Free      uint64  `json:"free"`
	Percent   float64 `json:"percent"`
	Buffers   uint64  `json:"buffers"`
	Cached    uint64  `json:"cached"`
	Shared    uint64  `json:"shared"`
}

// SwapInfo holds swap usage in bytes plus swap-in/out page counters.
type SwapInfo struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
	Sin     uint64  `json:"sin"`
	Sout    uint64  `json:"sout"`
}

// MemorySample is one point-in-time memory reading.
type MemorySample struct {
	SampleMeta
	Memory MemoryInfo `json:"memory"`
	Swap   SwapInfo   `json:"swap"`
}

func (MemorySample) Category() Category { return CategoryMemory }

// MountUsage holds filesystem usage for one mount point.
type MountUsage struct {
	Device     string  `json:"device"`
	Mountpoint string  `json:"mountpoint"`
	FSType     string  `json:"fstype"`
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
	Free       uint64  `json:"free"`
	Percent    float64 `json:"percent"`
}

// DiskIOCounters holds cumulative I/O counters for one block device.
type DiskIOCounters struct {
	ReadCount  uint64 `json:"read_count"`
	WriteCount uint64 `json:"write_count"`
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
	ReadTime   uint64 `json:"read_time"`
	WriteTime  uint64 `json:"write_time"`
}

// DiskIORates holds per-second I/O rates derived from two consecutive
// counter readings. Absent on the first collection.
type DiskIORates struct {
	ReadBytesSec  float64 `json:"read_bytes_sec"`
	WriteBytesSec float64 `json:"write_bytes_sec"`
	ReadCountSec  float64 `json:"read_count_sec"`
	WriteCountSec float64 `json:"write_count_sec"`
}

// DiskSample is one point-in-time disk reading.
type DiskSample struct {
	SampleMeta
	Usage      []MountUsage              `json:"usage"`
	IOCounters map[string]DiskIOCounters `json:"io_counters"`
	IORates    map[string]DiskIORates    `json:"io_rates,omitempty"`
}

func (DiskSample) Category() Category { return CategoryDisk }

// NetIOCounters holds cumulative traffic counters for one interface.
type NetIOCounters struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	ErrIn       uint64 `json:"errin"`
	ErrOut      uint64 `json:"errout"`
	DropIn      uint64 `json:"dropin"`
	DropOut     uint64 `json:"dropout"`
}

// NetIORates holds per-second traffic rates for one interface.
type NetIORates struct {
	BytesSentSec   float64 `json:"bytes_sent_sec"`
	BytesRecvSec   float64 `json:"bytes_recv_sec"`
	PacketsSentSec float64 `json:"packets_sent_sec"`
	PacketsRecvSec float64 `json:"packets_recv_sec"`
}

// ConnectionCounts tallies open sockets by protocol and state.
type ConnectionCounts struct {
	TCP         int `json:"tcp"`
	UDP         int `json:"udp"`
	Unix        int `json:"unix"`
	Other       int `json:"other"`
	Established int `json:"established"`
	Listening   int `json:"listening"`
	Total       int `json:"total"`
}

// NetworkSample is one point-in-time network reading.
type NetworkSample struct {
	SampleMeta
	IOCounters  map[string]NetIOCounters `json:"io_counters"`
	IORates     map[string]NetIORates    `json:"io_rates,omitempty"`
	Connections ConnectionCounts         `json:"connections"`
}

func (NetworkSample) Category() Category { return CategoryNetwork }

// MountPercent is a reduced per-mount usage entry used by the system
// sample and the status snapshot.
type MountPercent struct {
	Mountpoint string  `json:"mountpoint"`
	Percent    float64 `json:"percent"`
}

// SystemSample is the composite top-line reading stored under the
// "system" category.
type SystemSample struct {
	SampleMeta
	CPUUsage        float64        `json:"cpu_usage"`
	MemoryUsage     float64        `json:"memory_usage"`
	MemoryAvailable uint64         `json:"memory_available"`
	LoadAverage     LoadAverage    `json:"load_average"`
	DiskUsage       []MountPercent `json:"disk_usage"`
	ProcessCount    int            `json:"process_count"`
	BootTime        time.Time      `json:"boot_time"`
	Uptime          time.Duration  `json:"uptime"`
}

func (SystemSample) Category() Category { return CategorySystem }
