package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sysmon/pkg/errors"
)

// Config holds the complete application configuration
type Config struct {
	Version    string           `yaml:"version" json:"version"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring" json:"monitoring"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Output string `yaml:"output" json:"output"`
}

// MonitoringConfig holds monitoring system configuration
type MonitoringConfig struct {
	Enabled       bool             `yaml:"enabled" json:"enabled"`
	Interval      time.Duration    `yaml:"interval" json:"interval"`
	Metrics       []string         `yaml:"metrics" json:"metrics"`
	HistoryWindow time.Duration    `yaml:"history_window" json:"history_window"`
	StopTimeout   time.Duration    `yaml:"stop_timeout" json:"stop_timeout"`
	Thresholds    ThresholdsConfig `yaml:"thresholds" json:"thresholds"`
}

// ThresholdsConfig holds health check cut-off points. Percentages except
// the load entries, which are 1-minute load per logical CPU.
type ThresholdsConfig struct {
	CPUWarning     float64 `yaml:"cpu_warning" json:"cpu_warning"`
	CPUCritical    float64 `yaml:"cpu_critical" json:"cpu_critical"`
	MemoryWarning  float64 `yaml:"memory_warning" json:"memory_warning"`
	MemoryCritical float64 `yaml:"memory_critical" json:"memory_critical"`
	DiskWarning    float64 `yaml:"disk_warning" json:"disk_warning"`
	DiskCritical   float64 `yaml:"disk_critical" json:"disk_critical"`
	LoadWarning    float64 `yaml:"load_warning" json:"load_warning"`
	LoadCritical   float64 `yaml:"load_critical" json:"load_critical"`
}

// DefaultConfig provides the baseline configuration used when no config
// file is present.
var DefaultConfig = Config{
	Version: "1.0",
	Logging: LoggingConfig{
		Level:  "INFO",
		Output: "stdout",
	},
	Monitoring: MonitoringConfig{
		Enabled:       true,
		Interval:      10 * time.Second,
		Metrics:       []string{"cpu", "memory", "disk", "network"},
		HistoryWindow: time.Hour,
		StopTimeout:   5 * time.Second,
		Thresholds: ThresholdsConfig{
			CPUWarning:     75.0,
			CPUCritical:    90.0,
			MemoryWarning:  75.0,
			MemoryCritical: 90.0,
			DiskWarning:    75.0,
			DiskCritical:   90.0,
			LoadWarning:    1.5,
			LoadCritical:   3.0,
		},
	},
}

// LoadConfig loads the configuration with the following precedence:
//  1. $SYSMON_CONFIG_PATH
//  2. ./sysmon-config.yml
//  3. /etc/sysmon/sysmon-config.yml
//
// Applies environment variable overrides for logging, then validates.
// Returns (config, configPath, error) - configPath indicates source of configuration.
func LoadConfig() (*Config, string, error) {
	config := DefaultConfig

	path, err := loadFromFile(&config)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config file: %w", err)
	}

	if val := os.Getenv("SYSMON_LOG_LEVEL"); val != "" {
		config.Logging.Level = val
	}

	if e := config.Validate(); e != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", e)
	}

	return &config, path, nil
}

// LoadConfigFile loads configuration from a specific YAML file, applying
// the built-in defaults for any field the file does not set.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// loadFromFile loads configuration from the first available YAML file.
// Does not return error if no file is found - uses defaults instead.
func loadFromFile(config *Config) (string, error) {
	configPaths := []string{
		os.Getenv("SYSMON_CONFIG_PATH"),
		"./sysmon-config.yml",
		"/etc/sysmon/sysmon-config.yml",
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return "", fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		return path, nil
	}

	return "built-in defaults (no config file found)", nil
}

// Validate checks the configuration for values the monitoring core cannot
// operate with. Returns error describing the first validation failure found.
func (c *Config) Validate() error {
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return errors.Wrapf(errors.ErrInvalidConfig, "invalid log level %q", c.Logging.Level)
	}

	m := &c.Monitoring
	if m.Interval < time.Second || m.Interval > time.Hour {
		return errors.Wrapf(errors.ErrInvalidConfig, "monitoring interval %s outside sane range [1s, 1h]", m.Interval)
	}
	if m.HistoryWindow <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "monitoring history window must be positive, got %s", m.HistoryWindow)
	}
	if m.StopTimeout <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "monitoring stop timeout must be positive, got %s", m.StopTimeout)
	}
	for _, metric := range m.Metrics {
		if _, ok := validMetrics[metric]; !ok {
			return errors.Wrapf(errors.ErrInvalidConfig, "unknown metric category %q", metric)
		}
	}

	t := &m.Thresholds
	pairs := []struct {
		name              string
		warning, critical float64
	}{
		{"cpu", t.CPUWarning, t.CPUCritical},
		{"memory", t.MemoryWarning, t.MemoryCritical},
		{"disk", t.DiskWarning, t.DiskCritical},
		{"load", t.LoadWarning, t.LoadCritical},
	}
	for _, p := range pairs {
		if p.warning <= 0 || p.critical <= 0 {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s thresholds must be positive", p.name)
		}
		if p.warning >= p.critical {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s warning threshold %.1f must be below critical %.1f", p.name, p.warning, p.critical)
		}
	}

	return nil
}

var validLogLevels = map[string]struct{}{
	"DEBUG": {}, "INFO": {}, "WARN": {}, "WARNING": {}, "ERROR": {},
}

var validMetrics = map[string]struct{}{
	"cpu": {}, "memory": {}, "disk": {}, "network": {}, "system": {},
}
