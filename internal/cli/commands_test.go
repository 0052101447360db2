package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"sysmon/internal/sysmon/monitoring"
	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/errors"
	"sysmon/pkg/logger"
)

func TestRootCommandProperties(t *testing.T) {
	if rootCmd.Use != "sysmon" {
		t.Errorf("Root command Use = %v, want sysmon", rootCmd.Use)
	}
	if !rootCmd.SilenceUsage {
		t.Error("Expected usage spam to be silenced on errors")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"run", "status", "health", "metrics", "version"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		if !registered[name] {
			t.Errorf("Expected %q subcommand to be registered", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("Expected --config persistent flag")
	}
	if rootCmd.PersistentFlags().Lookup("json") == nil {
		t.Error("Expected --json persistent flag")
	}
}

func TestMetricsCommandFlags(t *testing.T) {
	cmd := NewMetricsCmd()

	wantDefaults := map[string]string{
		"category": "all",
		"count":    "10",
		"duration": "0s",
	}

	got := make(map[string]string)
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		got[flag.Name] = flag.DefValue
	})

	for name, def := range wantDefaults {
		if got[name] != def {
			t.Errorf("Flag %q default = %q, want %q", name, got[name], def)
		}
	}
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRunCmd()
	if cmd.Flags().Lookup("interval") == nil {
		t.Error("Expected --interval flag on run command")
	}
}

func TestStopSamplingWarnsOnUncleanStop(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithConfig(logger.Config{Level: logger.DEBUG, Output: &buf})

	// Stop on an idle service reports false, which must surface in the log
	// rather than being swallowed.
	service := monitoring.NewServiceWithSources(nil, monitoring.Sources{})
	stopSampling(service, log)

	if !strings.Contains(buf.String(), "did not stop cleanly") {
		t.Errorf("Expected an unclean-stop warning, got %q", buf.String())
	}
}

func TestResolveCategories(t *testing.T) {
	all, err := resolveCategories("all")
	if err != nil {
		t.Fatalf("resolveCategories(all) failed: %v", err)
	}
	if len(all) != len(domain.Categories()) {
		t.Errorf("Expected all %d categories, got %d", len(domain.Categories()), len(all))
	}

	one, err := resolveCategories("cpu")
	if err != nil {
		t.Fatalf("resolveCategories(cpu) failed: %v", err)
	}
	if len(one) != 1 || one[0] != domain.CategoryCPU {
		t.Errorf("Expected [cpu], got %v", one)
	}

	_, err = resolveCategories("gpu")
	if err == nil {
		t.Fatal("Expected error for unknown category")
	}
	if !errors.Is(err, errors.ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
}
