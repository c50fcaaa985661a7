package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/helpdesk-ai/helpdesk/internal/domain/ticket"
)

const (
	// minRecognizeWidth is the width below which screenshots are upscaled
	// before recognition.
	minRecognizeWidth = 1000

	// DefaultMaxPixels bounds the decoded canvas. A few hundred KB of
	// compressed PNG can declare a canvas needing gigabytes of RGBA.
	DefaultMaxPixels int64 = 40_000_000
)

// prepareImage decodes any supported format and re-encodes it as an 8-bit
// RGBA PNG for the recognizer. Dimensions are read from the header first and
// images above maxPixels are rejected before any pixel is decoded.
func prepareImage(data []byte, maxPixels int64) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty upload", ticket.ErrImageDecode)
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	header, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ticket.ErrImageDecode, err)
	}
	if pixels := int64(header.Width) * int64(header.Height); pixels > maxPixels {
		return nil, format, fmt.Errorf("%w: image is %dx%d, above the %d pixel limit",
			ticket.ErrImageDecode, header.Width, header.Height, maxPixels)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ticket.ErrImageDecode, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, format, fmt.Errorf("%w: image has no pixels", ticket.ErrImageDecode)
	}

	dst := toRGBA(src, maxPixels)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, format, fmt.Errorf("%w: re-encode: %v", ticket.ErrImageDecode, err)
	}
	return buf.Bytes(), format, nil
}

// toRGBA upscales narrow images 2x unless the result would exceed maxPixels.
func toRGBA(src image.Image, maxPixels int64) *image.RGBA {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	scale := 1
	if width < minRecognizeWidth && int64(width)*int64(height)*4 <= maxPixels {
		scale = 2
	}

	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	if scale == 1 {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	}
	return dst
}
