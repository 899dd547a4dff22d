package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down", 1.234, 1.23},
		{"Round up", 1.236, 1.24},
		{"Negative", -1.234, -1.23},
		{"Already rounded", 10.50, 10.50},
		{"Machine error residue", 0.1 + 0.2, 0.30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.input)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) {
		t.Error("IsZero(0.005) should be true within currency tolerance")
	}
	if IsZero(0.02) {
		t.Error("IsZero(0.02) should be false")
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.0, 100.009, 0.01) {
		t.Error("values within tolerance reported as outside")
	}
	if WithinTolerance(100.0, 100.02, 0.01) {
		t.Error("values outside tolerance reported as inside")
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Half", 50, 100, 50},
		{"Zero total guards division", 50, 0, 0},
		{"Over 100%", 150, 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePercentage(tt.value, tt.total)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, got, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	if got := ApplyPercentage(200, 10); math.Abs(got-20) > 1e-9 {
		t.Errorf("ApplyPercentage(200, 10) = %v, expected 20", got)
	}
}
