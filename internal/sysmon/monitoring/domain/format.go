package domain

import (
	"fmt"
	"strings"
)

// BytesToHuman converts a byte count to a human readable string.
func BytesToHuman(bytes uint64) string {
	value := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB", "PB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.2f EB", value)
}

// FormatUptime renders an uptime in seconds as human readable text,
// e.g. "2 days, 3 hours, 5 minutes, 12 seconds".
func FormatUptime(seconds float64) string {
	total := int64(seconds)
	days := total / (24 * 3600)
	total %= 24 * 3600
	hours := total / 3600
	total %= 3600
	minutes := total / 60
	secs := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", days, plural("day", days)))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, plural("hour", hours)))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, plural("minute", minutes)))
	}
	parts = append(parts, fmt.Sprintf("%d %s", secs, plural("second", secs)))

	return strings.Join(parts, ", ")
}

func plural(unit string, n int64) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
