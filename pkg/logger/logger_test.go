package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: WARN, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Expected DEBUG to be filtered at WARN level")
	}
	if strings.Contains(output, "info message") {
		t.Error("Expected INFO to be filtered at WARN level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Expected WARN to pass at WARN level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Expected ERROR to pass at WARN level")
	}
}

func TestLogLineFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: DEBUG, Output: &buf})

	log.Info("sampling started", "interval", 10*time.Second)

	line := buf.String()
	if !strings.Contains(line, "[INFO]") {
		t.Errorf("Expected level marker in %q", line)
	}
	if !strings.Contains(line, "sampling started") {
		t.Errorf("Expected message in %q", line)
	}
	if !strings.Contains(line, "interval=10s") {
		t.Errorf("Expected duration field in %q", line)
	}
}

func TestWithFieldPropagates(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: DEBUG, Output: &buf})

	child := log.WithField("component", "scheduler")
	child.Info("tick")

	if !strings.Contains(buf.String(), "component=scheduler") {
		t.Errorf("Expected inherited field in %q", buf.String())
	}

	// The parent logger is unaffected.
	buf.Reset()
	log.Info("tick")
	if strings.Contains(buf.String(), "component=scheduler") {
		t.Error("Expected parent logger to be free of the child's field")
	}
}

func TestFieldFormatting(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithConfig(Config{Level: DEBUG, Output: &buf})

	log.Info("event",
		"text", "has spaces",
		"err", errors.New("device gone"),
	)

	line := buf.String()
	if !strings.Contains(line, `text="has spaces"`) {
		t.Errorf("Expected quoted string field in %q", line)
	}
	if !strings.Contains(line, `err="device gone"`) {
		t.Errorf("Expected quoted error field in %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"DEBUG", DEBUG, false},
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"WARN", WARN, false},
		{"WARNING", WARN, false},
		{"error", ERROR, false},
		{"LOUD", INFO, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if DEBUG.String() != "DEBUG" || INFO.String() != "INFO" ||
		WARN.String() != "WARN" || ERROR.String() != "ERROR" {
		t.Error("Unexpected level string rendering")
	}
	if LogLevel(99).String() != "UNKNOWN" {
		t.Error("Expected UNKNOWN for out-of-range level")
	}
}
