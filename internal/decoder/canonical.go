package decoder

import (
	"image"

	"go-gcode-eval/pkg/models"
)

// canonicalize converts a decoded image into the canonical pixel grid.
// Grayscale sources stay single-channel; everything else becomes 3-channel
// RGB composited over a white background, matching how transparent
// signatures are normalized before scoring.
func canonicalize(img image.Image) *models.CanonicalImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		pix := make([]float64, width*height)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pix[y*width+x] = float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return &models.CanonicalImage{Width: width, Height: height, Channels: 1, Pix: pix}
	}

	pix := make([]float64, width*height*3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			// RGBA returns premultiplied 16-bit channels, so compositing
			// over white is an addition of the uncovered fraction.
			white := 0xffff - a
			pix[i] = float64(clamp16(r+white)) / 257.0
			pix[i+1] = float64(clamp16(g+white)) / 257.0
			pix[i+2] = float64(clamp16(b+white)) / 257.0
			i += 3
		}
	}
	return &models.CanonicalImage{Width: width, Height: height, Channels: 3, Pix: pix}
}

func clamp16(v uint32) uint32 {
	if v > 0xffff {
		return 0xffff
	}
	return v
}
