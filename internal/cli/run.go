package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sysmon/internal/sysmon/monitoring"
	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/errors"
	"sysmon/pkg/logger"
)

// NewRunCmd creates the long-running monitoring daemon command.
func NewRunCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the monitoring loop until interrupted",
		Long: `Start the continuous monitoring loop: sample all enabled metric
categories once per interval, retain a bounded history, and log the derived
system status. The loop runs until SIGINT or SIGTERM.

Examples:
  sysmon run
  sysmon run --interval 5s
  sysmon run --config /etc/sysmon/sysmon-config.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if interval > 0 {
				cfg.Monitoring.Interval = interval
			}

			service := monitoring.NewServiceFromConfig(&cfg.Monitoring)
			log := logger.WithField("component", "run-cmd")

			service.Subscribe(monitoring.EventStatus, func(payload interface{}) {
				snapshot, ok := payload.(domain.SystemStatusSnapshot)
				if !ok {
					return
				}
				log.Info("system status",
					"status", string(snapshot.Status),
					"cpu", fmt.Sprintf("%.1f%%", snapshot.CPU.UsagePercent),
					"memory", fmt.Sprintf("%.1f%%", snapshot.Memory.Percent),
					"processes", snapshot.Processes.Count)
			})

			if !service.Start() {
				if !cfg.Monitoring.Enabled {
					return errors.ErrMonitoringDisabled
				}
				return errors.ErrAlreadyRunning
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigChan
			log.Info("shutting down", "signal", sig.String())

			if !service.Stop() {
				return errors.ErrShutdownTimeout
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0,
		"Override the sampling interval from configuration (e.g. 5s, 1m)")

	return cmd
}
