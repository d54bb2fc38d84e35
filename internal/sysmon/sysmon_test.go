package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	for range 2 {
		s := Sample()
		if s.CPUPercent < 0 || s.CPUPercent > 100 {
			t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
		}
		if s.MemPercent < 0 || s.MemPercent > 100 {
			t.Errorf("MemPercent out of range: %f", s.MemPercent)
		}
	}
}

func TestClampPercent(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{120, 100},
	}
	for _, tt := range tests {
		if got := clampPercent(tt.in); got != tt.want {
			t.Errorf("clampPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
