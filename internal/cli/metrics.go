package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sysmon/internal/sysmon/monitoring"
	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/errors"
	"sysmon/pkg/logger"
)

// NewMetricsCmd creates the short-run metrics sampling command.
func NewMetricsCmd() *cobra.Command {
	var (
		category string
		count    int
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Sample metrics for a short window and print the history",
		Long: `Run the sampling loop in-process for a bounded window, then print the
collected samples. Useful for spot checks and for observing rate-based
metrics, which need at least two samples.

Examples:
  sysmon metrics
  sysmon metrics --category cpu --count 5
  sysmon metrics --category network --duration 30s --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := resolveCategories(category)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// One-shot sampling ignores the enabled flag: the user asked for
			// readings explicitly.
			cfg.Monitoring.Enabled = true
			if duration > 0 && duration < cfg.Monitoring.Interval {
				cfg.Monitoring.Interval = duration
			}

			service := monitoring.NewServiceFromConfig(&cfg.Monitoring)
			if !service.Start() {
				return errors.ErrAlreadyRunning
			}
			if duration <= 0 {
				duration = cfg.Monitoring.Interval
			}
			time.Sleep(duration)
			stopSampling(service, logger.WithField("component", "metrics-cmd"))

			out := make(map[domain.Category][]domain.Sample, len(categories))
			for _, c := range categories {
				out[c] = service.GetMetrics(c, count)
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			for _, c := range categories {
				samples := out[c]
				fmt.Printf("%s: %d sample(s)\n", c, len(samples))
				for _, sample := range samples {
					meta := sample.Meta()
					if meta.Failed() {
						fmt.Printf("  %s  collection error: %s\n",
							meta.Timestamp.Format(time.RFC3339), meta.Error)
						continue
					}
					fmt.Printf("  %s  %s\n",
						meta.Timestamp.Format(time.RFC3339), summarize(sample))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "all",
		"Metric category to sample (cpu, memory, disk, network, system, all)")
	cmd.Flags().IntVar(&count, "count", 10,
		"Maximum number of samples to print per category")
	cmd.Flags().DurationVar(&duration, "duration", 0,
		"How long to sample before printing (defaults to one interval)")

	return cmd
}

// stopSampling stops the in-process loop, logging when the worker did not
// settle cleanly so the printed history is known to be best-effort.
func stopSampling(service *monitoring.Service, log *logger.Logger) {
	if !service.Stop() {
		log.Warn("sampling loop did not stop cleanly; printed history may be incomplete")
	}
}

// resolveCategories maps the --category flag to the categories to report.
func resolveCategories(flag string) ([]domain.Category, error) {
	if flag == "" || flag == "all" {
		return domain.Categories(), nil
	}
	c := domain.Category(flag)
	for _, known := range domain.Categories() {
		if c == known {
			return []domain.Category{c}, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnknownCategory, "%q", flag)
}

// summarize renders a one-line reading for the text output.
func summarize(sample domain.Sample) string {
	switch s := sample.(type) {
	case *domain.CPUSample:
		return fmt.Sprintf("usage=%.1f%% load1=%.2f", s.Usage.Average, s.LoadAverage.Load1)
	case *domain.MemorySample:
		return fmt.Sprintf("used=%.1f%% available=%s",
			s.Memory.Percent, domain.BytesToHuman(s.Memory.Available))
	case *domain.DiskSample:
		return fmt.Sprintf("%d mount(s), %d device(s)", len(s.Usage), len(s.IOCounters))
	case *domain.NetworkSample:
		return fmt.Sprintf("%d interface(s), %d connection(s)",
			len(s.IOCounters), s.Connections.Total)
	case *domain.SystemSample:
		return fmt.Sprintf("cpu=%.1f%% mem=%.1f%% procs=%d",
			s.CPUUsage, s.MemoryUsage, s.ProcessCount)
	default:
		return fmt.Sprintf("%T", sample)
	}
}
