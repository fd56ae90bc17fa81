package evaluator

// MetricKind selects the band table used to interpret a score.
type MetricKind string

const (
	MetricSSIM       MetricKind = "ssim"
	MetricSmoothness MetricKind = "smoothness"
)

// band is one (lowerBound, label) row of an interpretation table. Tables are
// ordered from highest lower bound to lowest; the first band whose lower
// bound the score reaches wins.
type band struct {
	lower float64
	label string
}

var ssimBands = []band{
	{0.9, "Very high similarity"},
	{0.7, "High similarity"},
	{0.5, "Moderate similarity"},
	{0.3, "Low similarity"},
	{0.0, "Very low similarity"},
}

var smoothnessBands = []band{
	{0.8, "Excellent line smoothness"},
	{0.6, "Good line smoothness"},
	{0.4, "Fair line smoothness"},
	{0.2, "Poor line smoothness"},
	{0.0, "Very poor line smoothness"},
}

// Interpret maps a score to its qualitative band label. Out-of-range scores
// clamp to the nearest band rather than failing.
func Interpret(kind MetricKind, score float64) string {
	table := ssimBands
	if kind == MetricSmoothness {
		table = smoothnessBands
	}

	for _, b := range table {
		if score >= b.lower {
			return b.label
		}
	}
	// Below zero clamps to the lowest band.
	return table[len(table)-1].label
}

// Clamp01 bounds a score to [0, 1] for reporting.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
