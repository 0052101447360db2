package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sysmon/internal/sysmon/monitoring"
	"sysmon/internal/sysmon/monitoring/domain"
)

// NewHealthCmd creates the one-shot health evaluation command.
func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Evaluate system health against thresholds",
		Long: `Take a fresh system reading, compare it against the configured warning
and critical thresholds, and report the triggered issues with remediation
hints. Exits non-zero when the system is in Critical state.

Examples:
  sysmon health
  sysmon health --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			service := monitoring.NewServiceFromConfig(&cfg.Monitoring)
			report := service.CheckHealth()

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Printf("Health: %s\n", report.Status)
				if len(report.Issues) == 0 {
					fmt.Println("No issues detected")
				}
				for _, issue := range report.Issues {
					fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.Component, issue.Message)
				}
				if len(report.Recommendations) > 0 {
					fmt.Println("Recommendations:")
					for _, rec := range report.Recommendations {
						fmt.Printf("  - %s\n", rec)
					}
				}
			}

			if report.Status == domain.StatusCritical {
				return fail("system health is critical")
			}
			return nil
		},
	}
}
