package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sysmon/pkg/config"
	"sysmon/pkg/logger"
)

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "sysmon",
	Short: "Sysmon - continuous Linux host monitoring",
	Long: `Sysmon samples CPU, memory, disk, network and system metrics on a fixed
interval, keeps a bounded in-memory history, and classifies overall system
health from the latest readings.

Run the sampling loop with 'sysmon run', or take one-shot readings with
'sysmon status', 'sysmon health' and 'sysmon metrics'.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to configuration file (searches common locations if not specified)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewHealthCmd())
	rootCmd.AddCommand(NewMetricsCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

// loadConfig resolves the effective configuration and applies the
// configured log level.
func loadConfig() (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)

	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
		path = configPath
	} else {
		cfg, path, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	if level, e := logger.ParseLevel(cfg.Logging.Level); e == nil {
		logger.SetLevel(level)
	}

	logger.Debug("configuration loaded", "path", path)
	return cfg, nil
}

func fail(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
