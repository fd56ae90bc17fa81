package toolpath

import (
	"encoding/json"
	"testing"

	apperrors "go-gcode-eval/internal/errors"
)

// fromJSON mimics how toolpath arrays arrive from request binding.
func fromJSON(t *testing.T, payload string) []interface{} {
	t.Helper()
	var raw []interface{}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("Bad test payload %q: %v", payload, err)
	}
	return raw
}

func TestParse_ValidToolpath(t *testing.T) {
	path, err := Parse(fromJSON(t, `[[0, 0], [10.5, -3], [20, 20]]`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(path))
	}
	if path[1].X != 10.5 || path[1].Y != -3 {
		t.Errorf("Expected point (10.5, -3), got (%f, %f)", path[1].X, path[1].Y)
	}
}

func TestParse_EmptyToolpath(t *testing.T) {
	path, err := Parse(fromJSON(t, `[]`))
	if err != nil {
		t.Fatalf("Expected empty toolpath to be valid, got error: %v", err)
	}
	if len(path) != 0 {
		t.Errorf("Expected empty sequence, got %d points", len(path))
	}
}

func TestParse_InvalidElements(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"wrong arity short", `[[0, 0], [1]]`},
		{"wrong arity long", `[[0, 0, 0]]`},
		{"non-numeric x", `[["a", 0]]`},
		{"non-numeric y", `[[0, null]]`},
		{"element not an array", `[[0, 0], 5]`},
		{"element is object", `[{"x": 0, "y": 0}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := Parse(fromJSON(t, tt.payload))
			if err == nil {
				t.Fatalf("Expected parse failure, got %v", path)
			}
			if !apperrors.IsType(err, apperrors.ErrorTypeInvalidToolpath) {
				t.Errorf("Expected invalid_toolpath error, got %v", err)
			}
			if path != nil {
				t.Errorf("Expected no partial result, got %v", path)
			}
		})
	}
}
