package evaluator

import (
	"image"
	"runtime"
	"sync"

	apperrors "go-gcode-eval/internal/errors"
	"go-gcode-eval/pkg/models"

	xdraw "golang.org/x/image/draw"
)

// Stabilizing constants of the structural similarity formula, K1=0.01 and
// K2=0.03 over a 255-level dynamic range. They keep flat windows well-defined.
const (
	ssimC1 = (0.01 * 255) * (0.01 * 255)
	ssimC2 = (0.03 * 255) * (0.03 * 255)
)

type ssimEvaluator struct {
	windowSize int
}

// NewSSIMEvaluator creates an SSIM evaluator with the given options.
func NewSSIMEvaluator(opts Options) SSIMEvaluator {
	windowSize := opts.SSIMWindowSize
	if windowSize <= 0 {
		windowSize = DefaultOptions().SSIMWindowSize
	}
	return &ssimEvaluator{windowSize: windowSize}
}

// Compare computes the mean structural similarity index over local windows of
// both images' luminance. A reproduced image of different dimensions is
// resized to the original with bilinear interpolation first, since reproduced
// renderings commonly differ in raster size.
func (e *ssimEvaluator) Compare(original, reproduced *models.CanonicalImage) (*models.SSIMResult, error) {
	if original.Width <= 0 || original.Height <= 0 || reproduced.Width <= 0 || reproduced.Height <= 0 {
		return nil, apperrors.NewInternalError("canonical image has non-positive dimensions", nil)
	}

	ref := original.Luminance()
	cmp := reproduced.Luminance()
	if reproduced.Width != original.Width || reproduced.Height != original.Height {
		cmp = resizeBilinear(cmp, reproduced.Width, reproduced.Height, original.Width, original.Height)
	}

	raw := e.meanSSIM(ref, cmp, original.Width, original.Height)
	score := Clamp01(raw)

	return &models.SSIMResult{
		Score:          score,
		RawScore:       raw,
		Interpretation: Interpret(MetricSSIM, score),
	}, nil
}

// meanSSIM averages the per-window SSIM over a tiling of win-sized windows.
// Window rows are processed in parallel horizontal strips.
func (e *ssimEvaluator) meanSSIM(ref, cmp []float64, width, height int) float64 {
	win := e.windowSize
	if win > width {
		win = width
	}
	if win > height {
		win = height
	}

	winCols := (width + win - 1) / win
	winRows := (height + win - 1) / win

	numWorkers := runtime.NumCPU()
	if winRows < numWorkers {
		numWorkers = winRows
	}
	rowsPerWorker := (winRows + numWorkers - 1) / numWorkers

	type partial struct {
		sum   float64
		count int
	}

	results := make(chan partial, numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		startRow := i * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > winRows {
			endRow = winRows
		}
		go func(startRow, endRow int) {
			defer wg.Done()

			var p partial
			for wr := startRow; wr < endRow; wr++ {
				y0 := wr * win
				y1 := y0 + win
				if y1 > height {
					y1 = height
				}
				for wc := 0; wc < winCols; wc++ {
					x0 := wc * win
					x1 := x0 + win
					if x1 > width {
						x1 = width
					}
					p.sum += windowSSIM(ref, cmp, width, x0, y0, x1, y1)
					p.count++
				}
			}
			results <- p
		}(startRow, endRow)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var sum float64
	count := 0
	for p := range results {
		sum += p.sum
		count += p.count
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// windowSSIM evaluates the luminance/contrast/structure comparison for one
// window using population statistics over the window's pixels.
func windowSSIM(ref, cmp []float64, stride, x0, y0, x1, y1 int) float64 {
	var sumX, sumY, sumXX, sumYY, sumXY float64
	n := float64((x1 - x0) * (y1 - y0))

	for y := y0; y < y1; y++ {
		base := y * stride
		for x := x0; x < x1; x++ {
			a := ref[base+x]
			b := cmp[base+x]
			sumX += a
			sumY += b
			sumXX += a * a
			sumYY += b * b
			sumXY += a * b
		}
	}

	meanX := sumX / n
	meanY := sumY / n
	varX := sumXX/n - meanX*meanX
	varY := sumYY/n - meanY*meanY
	cov := sumXY/n - meanX*meanY

	num := (2*meanX*meanY + ssimC1) * (2*cov + ssimC2)
	den := (meanX*meanX + meanY*meanY + ssimC1) * (varX + varY + ssimC2)
	return num / den
}

// resizeBilinear scales a luminance grid to the target dimensions.
func resizeBilinear(lum []float64, srcW, srcH, dstW, dstH int) []float64 {
	src := image.NewGray(image.Rect(0, 0, srcW, srcH))
	for i, v := range lum {
		rounded := v + 0.5
		if rounded > 255 {
			rounded = 255
		}
		src.Pix[i] = uint8(rounded)
	}

	dst := image.NewGray(image.Rect(0, 0, dstW, dstH))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := make([]float64, dstW*dstH)
	for i, v := range dst.Pix {
		out[i] = float64(v)
	}
	return out
}
