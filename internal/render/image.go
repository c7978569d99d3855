package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fieldworks/heightmap/internal/heightfield"
)

// ErrRenderFailed wraps image-encoding errors from the underlying encoder.
var ErrRenderFailed = errors.New("render: image encoding failed")

// GrayImage renders the field as an 8-bit grayscale image of exactly the
// field's dimensions. Each cell is clamped to [0, 1], scaled by 255, and
// truncated to an intensity. An ungenerated field yields an all-zero image
// of the right size.
func GrayImage(f *heightfield.Field) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width(), f.Height()))
	for cell, v := range f.All() {
		img.SetGray(cell.X, cell.Y, color.Gray{Y: uint8(clamp01(v) * 255)})
	}
	return img
}

// PNG encodes the grayscale render of the field.
func PNG(f *heightfield.Field) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, GrayImage(f)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

// DataURI encodes the grayscale render as a data:image/png;base64 URI
// suitable for embedding in an img tag.
func DataURI(f *heightfield.Field) (string, error) {
	data, err := PNG(f)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
