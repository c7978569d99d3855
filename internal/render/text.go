// Package render turns generated height fields into presentation forms: an
// aligned text table, a grayscale image, a PNG data URI, and a color relief
// image. Every adapter reads the field through its iterator and clamps raw
// values to [0, 1] before mapping them into the output range.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/fieldworks/heightmap/internal/heightfield"
)

// Text renders one line per row, cells right-aligned with one decimal digit
// and joined by single spaces, rows joined by CRLF. Cell values are clamped
// to [0, 1] and rescaled into the field's height range. An ungenerated field
// renders as the empty string.
func Text(f *heightfield.Field) string {
	cellWidth := columnWidth(f.MaxHeight())
	span := f.MaxHeight() - f.MinHeight()

	var b strings.Builder
	for cell, v := range f.All() {
		switch {
		case cell.X == 0 && cell.Y != 0:
			b.WriteString("\r\n")
		case cell.X != 0:
			b.WriteByte(' ')
		}
		h := clamp01(v)*span + f.MinHeight()
		fmt.Fprintf(&b, "%*.1f", cellWidth, h)
	}
	return b.String()
}

// columnWidth sizes cells for the expected magnitude of the output range so
// columns align without measuring every value: digits of the integer part of
// maxHeight, plus the decimal point and one fractional digit, plus one.
func columnWidth(maxHeight float64) int {
	if maxHeight < 1 {
		return 3
	}
	return int(math.Log10(maxHeight)) + 3
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
