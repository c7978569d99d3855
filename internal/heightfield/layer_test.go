package heightfield

import "testing"

// constEvaluator returns a fixed value regardless of coordinates or
// configuration, making layer arithmetic exactly predictable.
type constEvaluator struct {
	value float64
}

func (c *constEvaluator) Configure(seed uint64, frequency float64) {}
func (c *constEvaluator) Eval(x, y float64) float64                { return c.value }

// coordEvaluator returns x + 100*y so each cell gets a unique value.
type coordEvaluator struct{}

func (coordEvaluator) Configure(seed uint64, frequency float64) {}
func (coordEvaluator) Eval(x, y float64) float64                { return x + 100*y }

func TestAccumulateLayerScaleAndOffset(t *testing.T) {
	out := make([]float64, 6)
	accumulateLayer(&constEvaluator{value: 2}, 3, 2, 0.5, 0.25, out)

	for i, v := range out {
		if v != 1.25 {
			t.Errorf("out[%d] = %v, want 1.25", i, v)
		}
	}
}

func TestAccumulateLayerPreservesExistingContent(t *testing.T) {
	out := []float64{10, 20, 30, 40}
	accumulateLayer(&constEvaluator{value: 1}, 2, 2, 1, 0, out)

	want := []float64{11, 21, 31, 41}
	for i, v := range out {
		if v != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, v, want[i])
		}
	}
}

func TestAccumulateLayerRowMajorAddressing(t *testing.T) {
	width, height := 4, 3
	out := make([]float64, width*height)
	accumulateLayer(coordEvaluator{}, width, height, 1, 0, out)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			want := float64(x) + 100*float64(y)
			if got := out[x+y*width]; got != want {
				t.Errorf("cell (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
