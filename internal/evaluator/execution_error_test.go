package evaluator

import (
	"math"
	"testing"

	apperrors "go-gcode-eval/internal/errors"
	"go-gcode-eval/pkg/models"
)

func TestExecutionError_Identity(t *testing.T) {
	eval := NewExecutionErrorEvaluator()

	path := models.Toolpath{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: -3}}
	result, err := eval.Compare(path, path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Mean != 0 || result.Max != 0 || result.Min != 0 || result.StdDev != 0 {
		t.Errorf("Expected all-zero statistics for identical toolpaths, got %+v", result)
	}
	if result.Count != 3 {
		t.Errorf("Expected count 3, got %d", result.Count)
	}
}

func TestExecutionError_KnownValues(t *testing.T) {
	eval := NewExecutionErrorEvaluator()

	expected := models.Toolpath{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 20}}
	actual := models.Toolpath{{X: 0, Y: 1}, {X: 9, Y: 11}, {X: 21, Y: 19}}

	result, err := eval.Compare(expected, actual)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantErrors := []float64{1.0, math.Sqrt2, math.Sqrt2}
	tolerance := 1e-4

	if len(result.Errors) != len(wantErrors) {
		t.Fatalf("Expected %d errors, got %d", len(wantErrors), len(result.Errors))
	}
	for i, want := range wantErrors {
		if math.Abs(result.Errors[i]-want) > tolerance {
			t.Errorf("Error %d: expected ~%f, got %f", i, want, result.Errors[i])
		}
	}

	if math.Abs(result.Mean-1.2761) > 1e-3 {
		t.Errorf("Expected mean ~1.2761, got %f", result.Mean)
	}
	if math.Abs(result.Max-math.Sqrt2) > tolerance {
		t.Errorf("Expected max ~%f, got %f", math.Sqrt2, result.Max)
	}
	if math.Abs(result.Min-1.0) > tolerance {
		t.Errorf("Expected min 1.0, got %f", result.Min)
	}
	if result.Count != 3 {
		t.Errorf("Expected count 3, got %d", result.Count)
	}
}

func TestExecutionError_LengthMismatch(t *testing.T) {
	eval := NewExecutionErrorEvaluator()

	tests := []struct {
		name     string
		expected models.Toolpath
		actual   models.Toolpath
	}{
		{
			name:     "expected longer",
			expected: models.Toolpath{{X: 0, Y: 0}, {X: 1, Y: 1}},
			actual:   models.Toolpath{{X: 0, Y: 0}},
		},
		{
			name:     "actual longer",
			expected: models.Toolpath{{X: 0, Y: 0}},
			actual:   models.Toolpath{{X: 0, Y: 0}, {X: 1, Y: 1}},
		},
		{
			name:     "one empty",
			expected: models.Toolpath{},
			actual:   models.Toolpath{{X: 0, Y: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := eval.Compare(tt.expected, tt.actual)
			if err == nil {
				t.Fatalf("Expected length mismatch error, got result %+v", result)
			}
			if !apperrors.IsType(err, apperrors.ErrorTypeLengthMismatch) {
				t.Errorf("Expected toolpath_length_mismatch error, got %v", err)
			}
		})
	}
}

func TestExecutionError_BothEmpty(t *testing.T) {
	eval := NewExecutionErrorEvaluator()

	result, err := eval.Compare(models.Toolpath{}, models.Toolpath{})
	if err != nil {
		t.Fatalf("Expected vacuous agreement for empty toolpaths, got error: %v", err)
	}
	if result.Mean != 0 || result.Max != 0 || result.Min != 0 || result.StdDev != 0 || result.Count != 0 {
		t.Errorf("Expected all-zero result for empty toolpaths, got %+v", result)
	}
	if result.Errors == nil || len(result.Errors) != 0 {
		t.Errorf("Expected empty (non-nil) errors slice, got %v", result.Errors)
	}
}

func TestExecutionError_SinglePoint(t *testing.T) {
	eval := NewExecutionErrorEvaluator()

	result, err := eval.Compare(models.Toolpath{{X: 0, Y: 0}}, models.Toolpath{{X: 3, Y: 4}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if math.Abs(result.Mean-5.0) > 1e-9 {
		t.Errorf("Expected mean 5.0, got %f", result.Mean)
	}
	// A single sample has zero deviation by definition
	if result.StdDev != 0 {
		t.Errorf("Expected stddev 0 for single point, got %f", result.StdDev)
	}
	if result.Count != 1 {
		t.Errorf("Expected count 1, got %d", result.Count)
	}
}

func TestExecutionError_PopulationStdDev(t *testing.T) {
	eval := NewExecutionErrorEvaluator()

	// Distances 3 and 5: population stddev is 1.0
	expected := models.Toolpath{{X: 0, Y: 0}, {X: 0, Y: 0}}
	actual := models.Toolpath{{X: 3, Y: 0}, {X: 5, Y: 0}}

	result, err := eval.Compare(expected, actual)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(result.StdDev-1.0) > 1e-9 {
		t.Errorf("Expected population stddev 1.0, got %f", result.StdDev)
	}
}
