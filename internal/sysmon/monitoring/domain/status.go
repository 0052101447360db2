package domain

import (
	"time"
)

// Status classifies overall system condition.
type Status string

const (
	StatusHealthy  Status = "Healthy"
	StatusWarning  Status = "Warning"
	StatusDegraded Status = "Degraded"
	StatusCritical Status = "Critical"
	StatusUnknown  Status = "Unknown"
)

// statusRank orders statuses by severity so classification can take the
// maximum across independent checks.
var statusRank = map[Status]int{
	StatusUnknown:  -1,
	StatusHealthy:  0,
	StatusWarning:  1,
	StatusDegraded: 2,
	StatusCritical: 3,
}

// Worse returns the more severe of the two statuses.
func (s Status) Worse(other Status) Status {
	if statusRank[other] > statusRank[s] {
		return other
	}
	return s
}

// Severity classifies a single health issue.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// SnapshotCPU summarizes CPU state inside a status snapshot.
type SnapshotCPU struct {
	UsagePercent float64     `json:"usage_percent"`
	LoadAverage  LoadAverage `json:"load_average"`
}

// SnapshotMemory summarizes memory state inside a status snapshot.
type SnapshotMemory struct {
	Percent        float64 `json:"percent"`
	Available      uint64  `json:"available"`
	AvailableHuman string  `json:"available_human"`
}

// SnapshotProcesses summarizes process state inside a status snapshot.
type SnapshotProcesses struct {
	Count int `json:"count"`
}

// SnapshotUptime carries uptime both as seconds and human-readable text.
type SnapshotUptime struct {
	Seconds float64 `json:"seconds"`
	Human   string  `json:"human"`
}

// SystemStatusSnapshot is the derived, immutable summary of the latest
// readings across categories. It is recomputed on every scheduler tick and
// on demand for status queries; it is never mutated after creation.
type SystemStatusSnapshot struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    Status            `json:"status"`
	CPU       SnapshotCPU       `json:"cpu"`
	Memory    SnapshotMemory    `json:"memory"`
	Disks     []MountPercent    `json:"disks"`
	Processes SnapshotProcesses `json:"processes"`
	Uptime    SnapshotUptime    `json:"uptime"`
	Error     string            `json:"error,omitempty"`
}

// Issue describes one triggered health check.
type Issue struct {
	Component string   `json:"component"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
}

// HealthReport is the result of evaluating a status snapshot against the
// configured thresholds.
type HealthReport struct {
	Timestamp       time.Time            `json:"timestamp"`
	Status          Status               `json:"status"`
	Issues          []Issue              `json:"issues"`
	Recommendations []string             `json:"recommendations"`
	SystemStatus    SystemStatusSnapshot `json:"system_status"`
}
