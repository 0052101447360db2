package monitoring

import (
	"fmt"
	"time"

	"sysmon/internal/sysmon/monitoring/domain"
)

// Status classification tiers for the top-line snapshot status. Distinct
// from the health thresholds: classification is a coarse three-tier scheme
// while health evaluation works off the configurable warning/critical
// cut-offs.
const (
	classifyWarning  = 60.0
	classifyDegraded = 75.0
	classifyCritical = 90.0
)

// ClassifyStatus derives the snapshot status from CPU, memory and
// per-mount disk percentages. The result is the worst tier any input
// falls into.
func ClassifyStatus(cpuUsage, memoryUsage float64, disks []domain.MountPercent) domain.Status {
	status := domain.StatusHealthy

	status = status.Worse(classifyPercent(cpuUsage))
	status = status.Worse(classifyPercent(memoryUsage))
	for _, mount := range disks {
		status = status.Worse(classifyPercent(mount.Percent))
	}

	return status
}

func classifyPercent(pct float64) domain.Status {
	switch {
	case pct > classifyCritical:
		return domain.StatusCritical
	case pct > classifyDegraded:
		return domain.StatusDegraded
	case pct > classifyWarning:
		return domain.StatusWarning
	default:
		return domain.StatusHealthy
	}
}

// EvaluateHealth maps a status snapshot to a health report using the given
// thresholds. Pure: the same snapshot and thresholds always produce the
// same issues, status and recommendations (only the report timestamp
// varies).
func EvaluateHealth(snapshot domain.SystemStatusSnapshot, thresholds domain.HealthThresholds) domain.HealthReport {
	var issues []domain.Issue
	status := domain.StatusHealthy

	check := func(component string, value float64, warning, critical float64, criticalMsg, warningMsg string) {
		switch {
		case value > critical:
			status = status.Worse(domain.StatusCritical)
			issues = append(issues, domain.Issue{
				Component: component,
				Severity:  domain.SeverityCritical,
				Message:   criticalMsg,
			})
		case value > warning:
			status = status.Worse(domain.StatusWarning)
			issues = append(issues, domain.Issue{
				Component: component,
				Severity:  domain.SeverityWarning,
				Message:   warningMsg,
			})
		}
	}

	cpuUsage := snapshot.CPU.UsagePercent
	check("cpu", cpuUsage, thresholds.CPUWarning, thresholds.CPUCritical,
		fmt.Sprintf("High CPU usage (%.1f%%)", cpuUsage),
		fmt.Sprintf("Elevated CPU usage (%.1f%%)", cpuUsage))

	memoryUsage := snapshot.Memory.Percent
	check("memory", memoryUsage, thresholds.MemoryWarning, thresholds.MemoryCritical,
		fmt.Sprintf("High memory usage (%.1f%%)", memoryUsage),
		fmt.Sprintf("Elevated memory usage (%.1f%%)", memoryUsage))

	for _, mount := range snapshot.Disks {
		check("disk", mount.Percent, thresholds.DiskWarning, thresholds.DiskCritical,
			fmt.Sprintf("High disk usage on %s (%.1f%%)", mount.Mountpoint, mount.Percent),
			fmt.Sprintf("Elevated disk usage on %s (%.1f%%)", mount.Mountpoint, mount.Percent))
	}

	loadPerCPU := snapshot.CPU.LoadAverage.Load1PerCPU
	check("load", loadPerCPU, thresholds.LoadWarning, thresholds.LoadCritical,
		fmt.Sprintf("Very high system load (load per CPU: %.1f)", loadPerCPU),
		fmt.Sprintf("High system load (load per CPU: %.1f)", loadPerCPU))

	return domain.HealthReport{
		Timestamp:       time.Now(),
		Status:          status,
		Issues:          issues,
		Recommendations: recommendations(issues),
		SystemStatus:    snapshot,
	}
}

// recommendations generates one remediation hint per component with a
// critical issue. Additive: multiple hints may be emitted for one report.
func recommendations(issues []domain.Issue) []string {
	hints := map[string]string{
		"cpu":    "Identify and terminate CPU-intensive processes",
		"memory": "Check for memory leaks or increase system memory",
		"disk":   "Free up disk space by removing unnecessary files",
		"load":   "Reduce system load by terminating unnecessary processes",
	}

	var out []string
	for _, component := range []string{"cpu", "memory", "disk", "load"} {
		for _, issue := range issues {
			if issue.Component == component && issue.Severity == domain.SeverityCritical {
				out = append(out, hints[component])
				break
			}
		}
	}
	return out
}
