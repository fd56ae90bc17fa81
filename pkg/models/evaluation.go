package models

// CanonicalImage is the normalized in-memory representation every evaluator
// consumes, independent of the encoding the image arrived in. Pixel values are
// intensities in [0, 255]. For Channels == 3 the Pix slice is interleaved RGB;
// for Channels == 1 it holds one luminance value per pixel.
type CanonicalImage struct {
	Width    int
	Height   int
	Channels int
	Pix      []float64
}

// Luminance flattens the image to a single intensity channel using the
// ITU-R BT.601 weights. A 1-channel image is returned as-is.
func (ci *CanonicalImage) Luminance() []float64 {
	if ci.Channels == 1 {
		return ci.Pix
	}

	lum := make([]float64, ci.Width*ci.Height)
	for i := range lum {
		r := ci.Pix[i*3]
		g := ci.Pix[i*3+1]
		b := ci.Pix[i*3+2]
		lum[i] = 0.299*r + 0.587*g + 0.114*b
	}
	return lum
}

// Point2D is an (x, y) coordinate pair in the caller's raw coordinate space.
type Point2D struct {
	X float64
	Y float64
}

// Toolpath is an ordered sequence of coordinates describing a tool's path of
// travel. Order is significant: execution-error comparison aligns points by
// index.
type Toolpath []Point2D

// SSIMResult holds the outcome of a structural-similarity comparison.
// Score is clamped to [0, 1] for reporting; RawScore preserves the unclamped
// value of the index formula.
type SSIMResult struct {
	Score          float64
	RawScore       float64
	Interpretation string
}

// SmoothnessResult holds the outcome of a line-smoothness analysis.
type SmoothnessResult struct {
	Score          float64
	Interpretation string
}

// ExecutionErrorResult holds per-point Euclidean distances between two
// index-aligned toolpaths plus summary statistics. StdDev is the population
// standard deviation of the per-point errors.
type ExecutionErrorResult struct {
	Mean   float64
	Errors []float64
	Max    float64
	Min    float64
	StdDev float64
	Count  int
}
