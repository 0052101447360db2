package domain

import (
	"time"
)

// HealthThresholds holds the cut-off points used by health evaluation.
// Values are percentages except the load entries, which are 1-minute load
// average per logical CPU.
type HealthThresholds struct {
	CPUWarning     float64 `json:"cpu_warning" yaml:"cpu_warning"`
	CPUCritical    float64 `json:"cpu_critical" yaml:"cpu_critical"`
	MemoryWarning  float64 `json:"memory_warning" yaml:"memory_warning"`
	MemoryCritical float64 `json:"memory_critical" yaml:"memory_critical"`
	DiskWarning    float64 `json:"disk_warning" yaml:"disk_warning"`
	DiskCritical   float64 `json:"disk_critical" yaml:"disk_critical"`
	LoadWarning    float64 `json:"load_warning" yaml:"load_warning"`
	LoadCritical   float64 `json:"load_critical" yaml:"load_critical"`
}

// DefaultThresholds returns the stock health thresholds.
func DefaultThresholds() HealthThresholds {
	return HealthThresholds{
		CPUWarning:     75.0,
		CPUCritical:    90.0,
		MemoryWarning:  75.0,
		MemoryCritical: 90.0,
		DiskWarning:    75.0,
		DiskCritical:   90.0,
		LoadWarning:    1.5,
		LoadCritical:   3.0,
	}
}

// MonitoringConfig represents monitoring system configuration.
type MonitoringConfig struct {
	Enabled       bool             `json:"enabled" yaml:"enabled"`
	Interval      time.Duration    `json:"interval" yaml:"interval"`
	Categories    []Category       `json:"categories" yaml:"categories"`
	HistoryWindow time.Duration    `json:"history_window" yaml:"history_window"`
	StopTimeout   time.Duration    `json:"stop_timeout" yaml:"stop_timeout"`
	Thresholds    HealthThresholds `json:"thresholds" yaml:"thresholds"`
}

// DefaultMonitoringConfig returns a monitoring configuration with sensible
// defaults: 10 second sampling, one hour of retained history, all metric
// categories enabled.
func DefaultMonitoringConfig() *MonitoringConfig {
	return &MonitoringConfig{
		Enabled:       true,
		Interval:      10 * time.Second,
		Categories:    []Category{CategoryCPU, CategoryMemory, CategoryDisk, CategoryNetwork},
		HistoryWindow: time.Hour,
		StopTimeout:   5 * time.Second,
		Thresholds:    DefaultThresholds(),
	}
}

// HistoryCapacity derives the per-category sample capacity from the history
// window and the sampling interval. At the defaults this is one hour of
// samples (3600 / interval seconds).
func (c *MonitoringConfig) HistoryCapacity() int {
	interval := c.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	window := c.HistoryWindow
	if window <= 0 {
		window = time.Hour
	}
	capacity := int(window / interval)
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

// CategoryEnabled reports whether the given category is in the enabled set.
// The system category is always collected.
func (c *MonitoringConfig) CategoryEnabled(category Category) bool {
	if category == CategorySystem {
		return true
	}
	for _, enabled := range c.Categories {
		if enabled == category {
			return true
		}
	}
	return false
}

// MonitoringStatus describes the control surface's view of the scheduler.
type MonitoringStatus struct {
	Enabled  bool             `json:"enabled"`
	Running  bool             `json:"running"`
	Interval time.Duration    `json:"interval"`
	Metrics  map[Category]int `json:"metrics"`
}
