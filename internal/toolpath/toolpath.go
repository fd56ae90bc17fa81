package toolpath

import (
	"fmt"

	apperrors "go-gcode-eval/internal/errors"
	"go-gcode-eval/pkg/models"
)

// Parse turns a raw JSON array of coordinate pairs into an ordered Toolpath.
// Every element must be a 2-element array of numbers; any violation fails the
// whole parse, never a partial result. An empty array is a valid, empty
// toolpath.
func Parse(raw []interface{}) (models.Toolpath, error) {
	path := make(models.Toolpath, 0, len(raw))

	for i, element := range raw {
		pair, ok := element.([]interface{})
		if !ok {
			return nil, apperrors.NewInvalidToolpathError(
				fmt.Sprintf("element %d is not a coordinate array", i), nil)
		}
		if len(pair) != 2 {
			return nil, apperrors.NewInvalidToolpathError(
				fmt.Sprintf("element %d has %d components, expected 2", i, len(pair)), nil)
		}

		x, err := toFloat(pair[0])
		if err != nil {
			return nil, apperrors.NewInvalidToolpathError(
				fmt.Sprintf("element %d has a non-numeric x component", i), err)
		}
		y, err := toFloat(pair[1])
		if err != nil {
			return nil, apperrors.NewInvalidToolpathError(
				fmt.Sprintf("element %d has a non-numeric y component", i), err)
		}

		path = append(path, models.Point2D{X: x, Y: y})
	}

	return path, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}
