package decoder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	apperrors "go-gcode-eval/internal/errors"
	"go-gcode-eval/internal/logger"
	"go-gcode-eval/pkg/models"

	"github.com/sirupsen/logrus"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterizeSVG renders SVG markup onto a white raster canvas and
// canonicalizes the result. The intrinsic viewbox size wins when present,
// otherwise the configured fallback size is used.
func (d *imageDecoder) rasterizeSVG(data []byte) (ci *models.CanonicalImage, err error) {
	// The SVG parser panics on some malformed path data; treat that the same
	// as a parse error.
	defer func() {
		if r := recover(); r != nil {
			ci = nil
			err = apperrors.NewImageDecodeError(fmt.Sprintf("SVG rasterization failed: %v", r), nil)
		}
	}()

	icon, parseErr := oksvg.ReadIconStream(bytes.NewReader(data))
	if parseErr != nil {
		return nil, apperrors.NewImageDecodeError("malformed SVG markup", parseErr)
	}

	width := int(icon.ViewBox.W)
	height := int(icon.ViewBox.H)
	if width <= 0 || height <= 0 {
		width = d.svgWidth
		height = d.svgHeight
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	logger.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
	}).Debug("Rasterized SVG")

	return canonicalize(rgba), nil
}
