package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"

	"github.com/fieldworks/heightmap/internal/heightfield"
)

// Elevation bands for the relief palette, as fractions of the clamped range.
var reliefBands = []struct {
	upTo    float64
	r, g, b float64
}{
	{0.30, 0.16, 0.30, 0.58}, // deep water
	{0.40, 0.21, 0.47, 0.72}, // shallow water
	{0.45, 0.86, 0.80, 0.59}, // sand
	{0.65, 0.33, 0.55, 0.27}, // grass
	{0.80, 0.48, 0.44, 0.36}, // rock
	{1.01, 0.94, 0.95, 0.96}, // snow
}

// ReliefImage renders the field with a terrain palette instead of raw
// intensities: clamped values are bucketed into water, sand, grass, rock, and
// snow bands. Dimensions match the field; an ungenerated field renders as a
// blank (deep water) image.
func ReliefImage(f *heightfield.Field) image.Image {
	dc := gg.NewContext(f.Width(), f.Height())
	dc.SetRGB(reliefBands[0].r, reliefBands[0].g, reliefBands[0].b)
	dc.Clear()
	for cell, v := range f.All() {
		band := reliefBands[len(reliefBands)-1]
		for _, b := range reliefBands {
			if clamp01(v) < b.upTo {
				band = b
				break
			}
		}
		dc.SetRGB(band.r, band.g, band.b)
		dc.SetPixel(cell.X, cell.Y)
	}
	return dc.Image()
}

// ReliefPNG encodes the relief render of the field.
func ReliefPNG(f *heightfield.Field) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, ReliefImage(f)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}
