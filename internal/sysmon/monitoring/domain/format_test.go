package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesToHuman(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0.00 B"},
		{512, "512.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{8 << 30, "8.00 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 50, "1.00 PB"},
		{1 << 60, "1.00 EB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BytesToHuman(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0 seconds"},
		{1, "1 second"},
		{59, "59 seconds"},
		{60, "1 minute, 0 seconds"},
		{61, "1 minute, 1 second"},
		{3600, "1 hour, 0 minutes, 0 seconds"},
		{3661, "1 hour, 1 minute, 1 second"},
		{86400, "1 day, 0 hours, 0 minutes, 0 seconds"},
		{90061, "1 day, 1 hour, 1 minute, 1 second"},
		{266445, "3 days, 2 hours, 0 minutes, 45 seconds"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUptime(tt.seconds), "seconds=%f", tt.seconds)
	}
}
