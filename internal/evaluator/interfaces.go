package evaluator

import "go-gcode-eval/pkg/models"

// SSIMEvaluator compares two canonical images for structural similarity.
type SSIMEvaluator interface {
	Compare(original, reproduced *models.CanonicalImage) (*models.SSIMResult, error)
}

// SmoothnessEvaluator scores stroke steadiness in a single canonical image.
type SmoothnessEvaluator interface {
	Evaluate(img *models.CanonicalImage) (*models.SmoothnessResult, error)
}

// ExecutionErrorEvaluator compares two index-aligned toolpaths.
type ExecutionErrorEvaluator interface {
	Compare(expected, actual models.Toolpath) (*models.ExecutionErrorResult, error)
}
