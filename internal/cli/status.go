package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysmon/internal/sysmon/monitoring"
)

// NewStatusCmd creates the one-shot system status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current system status",
		Long: `Take a fresh system-level reading and print the classified status:
CPU usage, memory usage, per-mount disk usage, process count and uptime.

Examples:
  sysmon status
  sysmon status --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			service := monitoring.NewServiceFromConfig(&cfg.Monitoring)
			snapshot := service.GetSystemStatus()

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(snapshot)
			}

			if snapshot.Error != "" {
				return fail("status collection failed: %s", snapshot.Error)
			}

			fmt.Printf("Status:    %s\n", snapshot.Status)
			fmt.Printf("CPU:       %.1f%%\n", snapshot.CPU.UsagePercent)
			fmt.Printf("Memory:    %.1f%% (%s available)\n",
				snapshot.Memory.Percent, snapshot.Memory.AvailableHuman)
			for _, d := range snapshot.Disks {
				fmt.Printf("Disk:      %.1f%% on %s\n", d.Percent, d.Mountpoint)
			}
			fmt.Printf("Processes: %d\n", snapshot.Processes.Count)
			fmt.Printf("Uptime:    %s\n", snapshot.Uptime.Human)
			return nil
		},
	}
}
