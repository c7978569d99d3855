package heightfield

import "github.com/fieldworks/heightmap/internal/noise"

// accumulateLayer adds one octave's contribution into out, which must have
// width*height elements. Existing content is preserved: each cell receives
// eval(x, y)*scale + offset on top of whatever previous octaves deposited.
func accumulateLayer(eval noise.Evaluator, width, height int, scale, offset float64, out []float64) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[x+y*width] += eval.Eval(float64(x), float64(y))*scale + offset
		}
	}
}
