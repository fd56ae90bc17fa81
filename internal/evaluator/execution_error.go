package evaluator

import (
	"fmt"
	"math"

	apperrors "go-gcode-eval/internal/errors"
	"go-gcode-eval/pkg/models"

	"gonum.org/v1/gonum/stat"
)

type executionErrorEvaluator struct{}

// NewExecutionErrorEvaluator creates an execution error evaluator.
func NewExecutionErrorEvaluator() ExecutionErrorEvaluator {
	return &executionErrorEvaluator{}
}

// Compare computes the Euclidean distance between index-aligned points of two
// equal-length toolpaths plus summary statistics. Two empty toolpaths agree
// vacuously and produce an all-zero result.
func (e *executionErrorEvaluator) Compare(expected, actual models.Toolpath) (*models.ExecutionErrorResult, error) {
	if len(expected) != len(actual) {
		return nil, apperrors.NewLengthMismatchError(
			fmt.Sprintf("expected toolpath has %d points, actual has %d", len(expected), len(actual)), nil)
	}

	if len(expected) == 0 {
		return &models.ExecutionErrorResult{Errors: []float64{}}, nil
	}

	errs := make([]float64, len(expected))
	maxErr := math.Inf(-1)
	minErr := math.Inf(1)
	for i := range expected {
		dx := expected[i].X - actual[i].X
		dy := expected[i].Y - actual[i].Y
		d := math.Hypot(dx, dy)
		errs[i] = d
		if d > maxErr {
			maxErr = d
		}
		if d < minErr {
			minErr = d
		}
	}

	mean := stat.Mean(errs, nil)

	return &models.ExecutionErrorResult{
		Mean:   mean,
		Errors: errs,
		Max:    maxErr,
		Min:    minErr,
		StdDev: popStdDev(errs, mean),
		Count:  len(errs),
	}, nil
}

// popStdDev is the population standard deviation. A single sample has zero
// deviation by definition.
func popStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
