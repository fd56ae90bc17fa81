package evaluator

import "testing"

func TestInterpret_SSIMBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, "Very high similarity"},
		{0.9, "Very high similarity"},
		{0.89, "High similarity"},
		{0.7, "High similarity"},
		{0.69, "Moderate similarity"},
		{0.5, "Moderate similarity"},
		{0.3, "Low similarity"},
		{0.29, "Very low similarity"},
		{0.0, "Very low similarity"},
	}

	for _, tt := range tests {
		if got := Interpret(MetricSSIM, tt.score); got != tt.want {
			t.Errorf("Interpret(ssim, %f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestInterpret_SmoothnessBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, "Excellent line smoothness"},
		{0.8, "Excellent line smoothness"},
		{0.79, "Good line smoothness"},
		{0.6, "Good line smoothness"},
		{0.4, "Fair line smoothness"},
		{0.2, "Poor line smoothness"},
		{0.1, "Very poor line smoothness"},
		{0.0, "Very poor line smoothness"},
	}

	for _, tt := range tests {
		if got := Interpret(MetricSmoothness, tt.score); got != tt.want {
			t.Errorf("Interpret(smoothness, %f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestInterpret_OutOfRangeClamps(t *testing.T) {
	if got := Interpret(MetricSSIM, 1.3); got != "Very high similarity" {
		t.Errorf("Expected above-range score to clamp to highest band, got %q", got)
	}
	if got := Interpret(MetricSSIM, -0.5); got != "Very low similarity" {
		t.Errorf("Expected below-range score to clamp to lowest band, got %q", got)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.1, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.01, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
