package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLaptime(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want float64
		ok   bool
	}{
		{"standard", "1:23.456", 83.456, true},
		{"leading space", " 1:22.100", 82.1, true},
		{"two minutes", "2:05.000", 125.0, true},
		{"no colon", "83.456", 0, false},
		{"empty", "", 0, false},
		{"dnf marker", "DNF", 0, false},
		{"garbage minutes", "x:23.456", 0, false},
		{"garbage seconds", "1:xx", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLaptime(tt.arg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseGap(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want float64
		ok   bool
	}{
		{"plus prefix", "+3.500", 3.5, true},
		{"plus zero", "+0.000", 0, true},
		{"no prefix", "3.500", 0, false},
		{"negative", "-1.000", 0, false},
		{"dnf", "DNF", 0, false},
		{"laps down", "+2 Laps", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseGap(tt.arg)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
