package evaluator

import (
	"math"
	"testing"

	"go-gcode-eval/pkg/models"
)

// strokeImage draws a connected dark stroke through the given per-column y
// positions onto a white canvas. Consecutive columns are joined vertically so
// the stroke stays 8-connected regardless of jitter amplitude.
func strokeImage(width, height int, ys []int) *models.CanonicalImage {
	img := uniformImage(width, height, 255)
	setStroke := func(x, y int) {
		if x >= 0 && y >= 0 && x < width && y < height {
			img.Pix[y*width+x] = 0
		}
	}

	for x, y := range ys {
		setStroke(x, y)
		if x > 0 {
			prev := ys[x-1]
			lo, hi := prev, y
			if lo > hi {
				lo, hi = hi, lo
			}
			for yy := lo; yy <= hi; yy++ {
				setStroke(x, yy)
			}
		}
	}
	return img
}

// jitteredLine produces per-column y positions for a horizontal stroke with a
// deterministic sinusoidal displacement of the given amplitude.
func jitteredLine(length, baseY int, amplitude float64) []int {
	ys := make([]int, length)
	for x := range ys {
		ys[x] = baseY + int(math.Round(amplitude*math.Sin(float64(x)*0.35)))
	}
	return ys
}

func TestSmoothness_BlankImage(t *testing.T) {
	eval := NewSmoothnessEvaluator(DefaultOptions())

	result, err := eval.Evaluate(uniformImage(100, 100, 255))
	if err != nil {
		t.Fatalf("Expected blank image to be a valid input, got error: %v", err)
	}
	if result.Score != 0.0 {
		t.Errorf("Expected score 0.0 for blank image, got %f", result.Score)
	}
	if result.Interpretation != "Very poor line smoothness" {
		t.Errorf("Expected 'Very poor line smoothness', got %q", result.Interpretation)
	}
}

func TestSmoothness_ScatteredSpeckles(t *testing.T) {
	eval := NewSmoothnessEvaluator(DefaultOptions())

	// Isolated dots and tiny blobs, nothing long enough to carry a tangent
	// signal. Noise must not score better than a blank image.
	img := uniformImage(60, 60, 255)
	for _, p := range [][2]int{{5, 5}, {20, 12}, {40, 8}, {12, 40}, {50, 50}} {
		img.Pix[p[1]*60+p[0]] = 0
	}
	for y := 30; y < 32; y++ {
		for x := 30; x < 32; x++ {
			img.Pix[y*60+x] = 0
		}
	}

	result, err := eval.Evaluate(img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Score != 0.0 {
		t.Errorf("Expected score 0.0 for speckle noise, got %f", result.Score)
	}
	if result.Interpretation != "Very poor line smoothness" {
		t.Errorf("Expected 'Very poor line smoothness', got %q", result.Interpretation)
	}
}

func TestSmoothness_StraightLine(t *testing.T) {
	eval := NewSmoothnessEvaluator(DefaultOptions())

	img := strokeImage(200, 100, jitteredLine(180, 50, 0))
	result, err := eval.Evaluate(img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Score < 0.8 {
		t.Errorf("Expected straight line to score >= 0.8, got %f", result.Score)
	}
	if result.Interpretation != "Excellent line smoothness" {
		t.Errorf("Expected 'Excellent line smoothness', got %q", result.Interpretation)
	}
}

func TestSmoothness_JitterMonotonicity(t *testing.T) {
	eval := NewSmoothnessEvaluator(DefaultOptions())

	amplitudes := []float64{0, 2, 6}
	scores := make([]float64, len(amplitudes))

	for i, amp := range amplitudes {
		img := strokeImage(200, 100, jitteredLine(180, 50, amp))
		result, err := eval.Evaluate(img)
		if err != nil {
			t.Fatalf("Unexpected error at amplitude %f: %v", amp, err)
		}
		scores[i] = result.Score
	}

	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[i-1]+1e-9 {
			t.Errorf("Expected non-increasing scores with growing jitter, got %v for amplitudes %v",
				scores, amplitudes)
		}
	}
	if scores[len(scores)-1] >= scores[0] {
		t.Errorf("Expected strong jitter to score strictly below a straight line, got %v", scores)
	}
}

func TestSmoothness_ScoreInRange(t *testing.T) {
	eval := NewSmoothnessEvaluator(DefaultOptions())

	images := []*models.CanonicalImage{
		strokeImage(200, 100, jitteredLine(180, 50, 10)),
		strokeImage(50, 50, jitteredLine(40, 25, 3)),
		uniformImage(50, 50, 0), // fully dark image is one giant component
	}

	for i, img := range images {
		result, err := eval.Evaluate(img)
		if err != nil {
			t.Fatalf("Unexpected error for image %d: %v", i, err)
		}
		if result.Score < 0 || result.Score > 1 {
			t.Errorf("Image %d: expected score in [0,1], got %f", i, result.Score)
		}
	}
}

func TestSmoothness_LengthWeightedAggregation(t *testing.T) {
	eval := NewSmoothnessEvaluator(DefaultOptions())

	// A short jittery fragment far from a long straight stroke
	longStraight := jitteredLine(160, 20, 0)
	img := strokeImage(200, 100, longStraight)
	for x := 0; x < 30; x++ {
		y := 80 + int(math.Round(4*math.Sin(float64(x)*0.35)))
		lo, hi := y, y
		if x > 0 {
			prev := 80 + int(math.Round(4*math.Sin(float64(x-1)*0.35)))
			if prev < y {
				lo = prev
			} else {
				hi = prev
			}
		}
		for yy := lo; yy <= hi; yy++ {
			img.Pix[yy*200+x] = 0
		}
	}

	combined, err := eval.Evaluate(img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	jitteryOnly, err := eval.Evaluate(strokeImage(200, 100, jitteredLine(30, 80, 4)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The long straight stroke should dominate the aggregate
	if combined.Score <= jitteryOnly.Score {
		t.Errorf("Expected length-weighted score (%f) above jittery-only score (%f)",
			combined.Score, jitteryOnly.Score)
	}
}
