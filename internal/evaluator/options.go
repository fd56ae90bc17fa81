package evaluator

// Options provides tunable parameters for the evaluators.
type Options struct {
	// SSIM window edge length in pixels.
	SSIMWindowSize int

	// Intensity below which a pixel counts as stroke rather than background.
	StrokeThreshold float64
	// Spacing in traced-path pixels between tangent samples.
	TangentStep int
	// Components shorter than this many pixels are ignored when longer
	// strokes exist.
	MinStrokeLength int
	// Scales angular-change variance before inversion into a score.
	CurvatureGain float64
}

// DefaultOptions returns the default evaluator parameters.
func DefaultOptions() Options {
	return Options{
		SSIMWindowSize:  8,
		StrokeThreshold: 128.0,
		TangentStep:     3,
		MinStrokeLength: 10,
		CurvatureGain:   10.0,
	}
}

// WithStrokeThreshold overrides the stroke segmentation threshold.
func (o Options) WithStrokeThreshold(threshold float64) Options {
	o.StrokeThreshold = threshold
	return o
}

// WithSSIMWindowSize overrides the SSIM window size.
func (o Options) WithSSIMWindowSize(size int) Options {
	o.SSIMWindowSize = size
	return o
}
