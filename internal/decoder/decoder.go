package decoder

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	apperrors "go-gcode-eval/internal/errors"
	"go-gcode-eval/internal/logger"
	"go-gcode-eval/pkg/models"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Encoding tags the form an image payload arrives in.
type Encoding int

const (
	// EncodingRaw is raw file bytes (uploaded file content).
	EncodingRaw Encoding = iota
	// EncodingBase64 is a base64 string, optionally with a data-URL prefix.
	EncodingBase64
	// EncodingSVG is SVG markup to be rasterized.
	EncodingSVG
)

// Payload is the tagged input variant the decoder normalizes. All three
// encodings funnel through the same Decode entry point so every evaluator
// sees the same canonicalization contract.
type Payload struct {
	Encoding Encoding
	Data     []byte
}

// ImageDecoder turns raw payloads into canonical pixel grids.
type ImageDecoder interface {
	Decode(p Payload) (*models.CanonicalImage, error)
}

type imageDecoder struct {
	maxPayloadSize int64
	svgWidth       int
	svgHeight      int
}

// NewImageDecoder creates a decoder bounded by maxPayloadSize bytes.
// svgWidth/svgHeight are the fallback raster size for SVG inputs without an
// intrinsic viewbox.
func NewImageDecoder(maxPayloadSize int64, svgWidth, svgHeight int) ImageDecoder {
	return &imageDecoder{
		maxPayloadSize: maxPayloadSize,
		svgWidth:       svgWidth,
		svgHeight:      svgHeight,
	}
}

// Decode produces a CanonicalImage from the payload or fails with a typed
// error. The size gate runs before any decode work to bound memory use.
func (d *imageDecoder) Decode(p Payload) (*models.CanonicalImage, error) {
	if int64(len(p.Data)) > d.maxPayloadSize {
		return nil, apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("payload of %d bytes exceeds limit of %d bytes", len(p.Data), d.maxPayloadSize), nil)
	}

	data := p.Data
	if p.Encoding == EncodingBase64 {
		decoded, err := decodeBase64(data)
		if err != nil {
			return nil, err
		}
		if int64(len(decoded)) > d.maxPayloadSize {
			return nil, apperrors.NewPayloadTooLargeError(
				fmt.Sprintf("decoded payload of %d bytes exceeds limit of %d bytes", len(decoded), d.maxPayloadSize), nil)
		}
		data = decoded
	}

	if len(data) == 0 {
		return nil, apperrors.NewImageDecodeError("empty image payload", nil)
	}

	format := detectFormat(data)
	if p.Encoding == EncodingSVG || format == "SVG" {
		return d.rasterizeSVG(data)
	}

	if format == "" {
		header := data
		if len(header) > 32 {
			header = header[:32]
		}
		return nil, apperrors.NewImageDecodeError(
			fmt.Sprintf("cannot detect image format from data (header: %x)", header), nil)
	}

	img, decodedFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewImageDecodeError(
			fmt.Sprintf("invalid or corrupted %s image", format), err)
	}

	logger.WithFields(logrus.Fields{
		"format": decodedFormat,
		"bytes":  len(data),
	}).Debug("Decoded raster image")

	return canonicalize(img), nil
}

// decodeBase64 cleans and decodes a base64 payload. Data-URL prefixes
// ("data:image/png;base64,...") and embedded whitespace are tolerated.
func decodeBase64(raw []byte) ([]byte, error) {
	s := string(raw)
	if idx := strings.IndexByte(s, ','); idx >= 0 && strings.Contains(s[:idx], "base64") {
		s = s[idx+1:]
	}
	s = strings.Join(strings.Fields(s), "")

	if s == "" {
		return nil, apperrors.NewInvalidEncodingError("empty base64 data", nil)
	}

	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, apperrors.NewInvalidEncodingError("invalid base64 encoding", err)
	}
	if len(decoded) == 0 {
		return nil, apperrors.NewInvalidEncodingError("decoded image data is empty", nil)
	}
	return decoded, nil
}

// detectFormat identifies the image format from magic bytes. SVG is detected
// by markup in the leading bytes since it has no binary signature.
func detectFormat(data []byte) string {
	head := data
	if len(head) > 100 {
		head = head[:100]
	}
	if bytes.Contains(head, []byte("<svg")) || bytes.HasPrefix(bytes.TrimSpace(head), []byte("<?xml")) {
		return "SVG"
	}

	if len(data) < 8 {
		return ""
	}

	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case bytes.HasPrefix(data, []byte("\xff\xd8\xff")):
		return "JPEG"
	case bytes.HasPrefix(data, []byte("BM")):
		return "BMP"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "GIF"
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return "TIFF"
	case bytes.HasPrefix(data, []byte("RIFF")) && len(data) >= 12 && bytes.Equal(data[8:12], []byte("WEBP")):
		return "WEBP"
	}
	return ""
}
