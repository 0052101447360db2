package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmon/internal/sysmon/monitoring/domain"
)

func TestClassifyStatus_Tiers(t *testing.T) {
	tests := []struct {
		name   string
		cpu    float64
		memory float64
		disks  []domain.MountPercent
		want   domain.Status
	}{
		{"all low", 10, 20, []domain.MountPercent{{Mountpoint: "/", Percent: 30}}, domain.StatusHealthy},
		{"at warning boundary", 60, 60, nil, domain.StatusHealthy},
		{"just above warning", 60.1, 0, nil, domain.StatusWarning},
		{"at degraded boundary", 75, 0, nil, domain.StatusWarning},
		{"just above degraded", 75.1, 0, nil, domain.StatusDegraded},
		{"at critical boundary", 90, 0, nil, domain.StatusDegraded},
		{"just above critical", 90.1, 0, nil, domain.StatusCritical},
		{"memory drives status", 10, 95, nil, domain.StatusCritical},
		{"disk drives status", 10, 20, []domain.MountPercent{{Mountpoint: "/", Percent: 80}}, domain.StatusDegraded},
		{"worst mount wins", 10, 20, []domain.MountPercent{
			{Mountpoint: "/", Percent: 40},
			{Mountpoint: "/data", Percent: 92},
		}, domain.StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.cpu, tt.memory, tt.disks))
		})
	}
}

func healthySnapshot() domain.SystemStatusSnapshot {
	return domain.SystemStatusSnapshot{
		Timestamp: time.Now(),
		Status:    domain.StatusHealthy,
		CPU: domain.SnapshotCPU{
			UsagePercent: 10,
			LoadAverage:  domain.LoadAverage{Load1: 0.5, Load1PerCPU: 0.1},
		},
		Memory: domain.SnapshotMemory{Percent: 20},
		Disks:  []domain.MountPercent{{Mountpoint: "/", Percent: 30}},
	}
}

func TestEvaluateHealth_Healthy(t *testing.T) {
	report := EvaluateHealth(healthySnapshot(), domain.DefaultThresholds())

	assert.Equal(t, domain.StatusHealthy, report.Status)
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, 10.0, report.SystemStatus.CPU.UsagePercent)
}

func TestEvaluateHealth_ThresholdBoundaries(t *testing.T) {
	thresholds := domain.DefaultThresholds()

	// Exactly at a threshold does not trigger: the comparison is strict.
	snapshot := healthySnapshot()
	snapshot.CPU.UsagePercent = 75
	report := EvaluateHealth(snapshot, thresholds)
	assert.Empty(t, report.Issues)

	snapshot.CPU.UsagePercent = 75.1
	report = EvaluateHealth(snapshot, thresholds)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "cpu", report.Issues[0].Component)
	assert.Equal(t, domain.SeverityWarning, report.Issues[0].Severity)
	assert.Equal(t, "Elevated CPU usage (75.1%)", report.Issues[0].Message)
	assert.Equal(t, domain.StatusWarning, report.Status)
	assert.Empty(t, report.Recommendations, "warnings carry no recommendations")

	snapshot.CPU.UsagePercent = 95.5
	report = EvaluateHealth(snapshot, thresholds)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, domain.SeverityCritical, report.Issues[0].Severity)
	assert.Equal(t, "High CPU usage (95.5%)", report.Issues[0].Message)
	assert.Equal(t, domain.StatusCritical, report.Status)
	assert.Equal(t, []string{"Identify and terminate CPU-intensive processes"}, report.Recommendations)
}

func TestEvaluateHealth_MemoryAndDisk(t *testing.T) {
	thresholds := domain.DefaultThresholds()

	snapshot := healthySnapshot()
	snapshot.Memory.Percent = 91
	snapshot.Disks = []domain.MountPercent{
		{Mountpoint: "/", Percent: 50},
		{Mountpoint: "/var", Percent: 93.2},
	}

	report := EvaluateHealth(snapshot, thresholds)
	require.Len(t, report.Issues, 2)
	assert.Equal(t, "memory", report.Issues[0].Component)
	assert.Equal(t, "High memory usage (91.0%)", report.Issues[0].Message)
	assert.Equal(t, "disk", report.Issues[1].Component)
	assert.Equal(t, "High disk usage on /var (93.2%)", report.Issues[1].Message)
	assert.Equal(t, domain.StatusCritical, report.Status)
	assert.Equal(t, []string{
		"Check for memory leaks or increase system memory",
		"Free up disk space by removing unnecessary files",
	}, report.Recommendations)
}

func TestEvaluateHealth_LoadPerCPU(t *testing.T) {
	thresholds := domain.DefaultThresholds()

	snapshot := healthySnapshot()
	snapshot.CPU.LoadAverage.Load1PerCPU = 2.0

	report := EvaluateHealth(snapshot, thresholds)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "load", report.Issues[0].Component)
	assert.Equal(t, "High system load (load per CPU: 2.0)", report.Issues[0].Message)

	snapshot.CPU.LoadAverage.Load1PerCPU = 3.5
	report = EvaluateHealth(snapshot, thresholds)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "Very high system load (load per CPU: 3.5)", report.Issues[0].Message)
	assert.Equal(t, []string{"Reduce system load by terminating unnecessary processes"}, report.Recommendations)
}

func TestEvaluateHealth_CustomThresholds(t *testing.T) {
	thresholds := domain.HealthThresholds{
		CPUWarning: 10, CPUCritical: 20,
		MemoryWarning: 10, MemoryCritical: 20,
		DiskWarning: 10, DiskCritical: 20,
		LoadWarning: 0.05, LoadCritical: 0.2,
	}

	report := EvaluateHealth(healthySnapshot(), thresholds)

	// cpu 10 is at the warning boundary and stays quiet; memory 20 sits at
	// the critical boundary and degrades only to warning; disk 30 and load
	// 0.1 cross their thresholds.
	require.Len(t, report.Issues, 3)
	assert.Equal(t, "memory", report.Issues[0].Component)
	assert.Equal(t, domain.SeverityWarning, report.Issues[0].Severity)
	assert.Equal(t, "disk", report.Issues[1].Component)
	assert.Equal(t, domain.SeverityCritical, report.Issues[1].Severity)
	assert.Equal(t, "load", report.Issues[2].Component)
	assert.Equal(t, domain.SeverityWarning, report.Issues[2].Severity)
	assert.Equal(t, domain.StatusCritical, report.Status)
}

func TestEvaluateHealth_Deterministic(t *testing.T) {
	snapshot := healthySnapshot()
	snapshot.CPU.UsagePercent = 95
	snapshot.Memory.Percent = 80

	first := EvaluateHealth(snapshot, domain.DefaultThresholds())
	second := EvaluateHealth(snapshot, domain.DefaultThresholds())

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Issues, second.Issues)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestStatusWorse(t *testing.T) {
	assert.Equal(t, domain.StatusCritical, domain.StatusHealthy.Worse(domain.StatusCritical))
	assert.Equal(t, domain.StatusCritical, domain.StatusCritical.Worse(domain.StatusWarning))
	assert.Equal(t, domain.StatusDegraded, domain.StatusWarning.Worse(domain.StatusDegraded))
	assert.Equal(t, domain.StatusHealthy, domain.StatusHealthy.Worse(domain.StatusHealthy))
	assert.Equal(t, domain.StatusHealthy, domain.StatusHealthy.Worse(domain.StatusUnknown))
}
