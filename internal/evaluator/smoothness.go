package evaluator

import (
	"math"

	"go-gcode-eval/pkg/models"

	"gonum.org/v1/gonum/stat"
)

type smoothnessEvaluator struct {
	opts Options
}

// NewSmoothnessEvaluator creates a smoothness evaluator with the given options.
func NewSmoothnessEvaluator(opts Options) SmoothnessEvaluator {
	def := DefaultOptions()
	if opts.StrokeThreshold <= 0 {
		opts.StrokeThreshold = def.StrokeThreshold
	}
	if opts.TangentStep <= 0 {
		opts.TangentStep = def.TangentStep
	}
	if opts.CurvatureGain <= 0 {
		opts.CurvatureGain = def.CurvatureGain
	}
	return &smoothnessEvaluator{opts: opts}
}

// Evaluate segments stroke pixels from a light background, traces each stroke
// into an ordered pixel path, and scores steadiness from the variance of
// frame-to-frame tangent angle changes. Disjoint strokes are aggregated by a
// length-weighted average so longer strokes dominate.
//
// A blank image is a valid, maximally-unsmooth input: it scores 0.0 instead
// of failing.
func (e *smoothnessEvaluator) Evaluate(img *models.CanonicalImage) (*models.SmoothnessResult, error) {
	width, height := img.Width, img.Height
	lum := img.Luminance()

	mask := make([]bool, width*height)
	strokePixels := 0
	for i, v := range lum {
		if v < e.opts.StrokeThreshold {
			mask[i] = true
			strokePixels++
		}
	}

	if strokePixels == 0 {
		return &models.SmoothnessResult{
			Score:          0.0,
			Interpretation: Interpret(MetricSmoothness, 0.0),
		}, nil
	}

	components := labelComponents(mask, width, height)

	// Prefer strokes long enough to carry a tangent signal; fall back to
	// everything when only fragments exist.
	usable := components[:0:0]
	for _, comp := range components {
		if len(comp) >= e.opts.MinStrokeLength {
			usable = append(usable, comp)
		}
	}
	if len(usable) == 0 {
		usable = components
	}

	var weightedSum, totalWeight float64
	for _, comp := range usable {
		path := tracePath(comp, width, height)
		score := e.pathScore(path, width)
		weight := float64(len(path))
		weightedSum += score * weight
		totalWeight += weight
	}

	score := Clamp01(weightedSum / totalWeight)
	return &models.SmoothnessResult{
		Score:          score,
		Interpretation: Interpret(MetricSmoothness, score),
	}, nil
}

// pathScore derives a [0,1] smoothness value from the angular-change variance
// along one traced path. Paths too short to yield two angular changes carry
// no line at all, only a fragment, and score like a blank image.
func (e *smoothnessEvaluator) pathScore(path []int, width int) float64 {
	step := e.opts.TangentStep

	// Tangent angle at each sampled point along the path.
	var angles []float64
	for i := step; i < len(path); i += step {
		x0, y0 := path[i-step]%width, path[i-step]/width
		x1, y1 := path[i]%width, path[i]/width
		angles = append(angles, math.Atan2(float64(y1-y0), float64(x1-x0)))
	}

	// Frame-to-frame angular change, wrapped to (-pi, pi].
	var deltas []float64
	for i := 1; i < len(angles); i++ {
		d := angles[i] - angles[i-1]
		for d > math.Pi {
			d -= 2 * math.Pi
		}
		for d <= -math.Pi {
			d += 2 * math.Pi
		}
		deltas = append(deltas, d)
	}

	if len(deltas) < 2 {
		return 0.0
	}

	variance := stat.Variance(deltas, nil)
	return 1.0 / (1.0 + e.opts.CurvatureGain*variance)
}

// labelComponents groups stroke pixels into 8-connected components.
func labelComponents(mask []bool, width, height int) [][]int {
	seen := make([]bool, len(mask))
	var components [][]int

	for start, isStroke := range mask {
		if !isStroke || seen[start] {
			continue
		}

		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, idx)

			x, y := idx%width, idx/width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= width || ny >= height {
						continue
					}
					nidx := ny*width + nx
					if mask[nidx] && !seen[nidx] {
						seen[nidx] = true
						stack = append(stack, nidx)
					}
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// tracePath orders a component's pixels into a path by walking from an
// endpoint to the nearest unvisited neighbor. The endpoint is the pixel with
// the fewest stroke neighbors, which for open strokes is a line end.
func tracePath(comp []int, width, height int) []int {
	inComp := make(map[int]bool, len(comp))
	for _, idx := range comp {
		inComp[idx] = true
	}

	start := comp[0]
	minNeighbors := 9
	for _, idx := range comp {
		n := countNeighbors(idx, inComp, width, height)
		if n < minNeighbors {
			minNeighbors = n
			start = idx
		}
	}

	visited := make(map[int]bool, len(comp))
	path := make([]int, 0, len(comp))
	current := start
	visited[current] = true
	path = append(path, current)

	for {
		next, ok := nearestUnvisited(current, inComp, visited, width, height)
		if !ok {
			break
		}
		visited[next] = true
		path = append(path, next)
		current = next
	}
	return path
}

func countNeighbors(idx int, inComp map[int]bool, width, height int) int {
	x, y := idx%width, idx/width
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			if inComp[ny*width+nx] {
				count++
			}
		}
	}
	return count
}

func nearestUnvisited(idx int, inComp, visited map[int]bool, width, height int) (int, bool) {
	x, y := idx%width, idx/width
	best := -1
	bestDist := math.MaxFloat64
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= width || ny >= height {
				continue
			}
			nidx := ny*width + nx
			if !inComp[nidx] || visited[nidx] {
				continue
			}
			dist := float64(dx*dx + dy*dy)
			if dist < bestDist {
				bestDist = dist
				best = nidx
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
