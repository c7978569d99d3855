// Package heightfield implements fractal heightmap synthesis: a fixed-size
// scalar field filled by summing octaves of coherent noise at increasing
// frequency and decreasing amplitude.
package heightfield

import (
	"errors"
	"iter"
	"math/rand"
	"time"

	"github.com/fieldworks/heightmap/internal/noise"
)

var (
	ErrInvalidSize = errors.New("heightfield: width and height must be positive")
)

// Per-octave progression. Each refinement octave samples at 4x the frequency
// of the previous one and contributes 1/6 of its amplitude. These exact
// ratios are load-bearing: changing them changes every generated map.
const (
	octaveFrequencyStep = 4.0
	octaveScaleDivisor  = 6.0
)

// Cell is a grid coordinate within a field.
type Cell struct {
	X, Y int
}

// Field is a 2D heightmap. The size, output height range, and octave count
// are fixed at construction; the value buffer is empty until Generate runs
// and is replaced wholesale by each generation pass. Values are unnormalized
// noise sums; consumers clamp to [0, 1] on read.
type Field struct {
	width, height int
	minHeight     float64
	maxHeight     float64
	octaves       int
	eval          noise.Evaluator
	data          []float64
}

// New creates an ungenerated field. Octaves counts the refinement octaves
// added on top of the base octave; zero is valid. The min <= max ordering of
// the height range is the caller's responsibility.
func New(width, height int, minHeight, maxHeight float64, octaves int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Field{
		width:     width,
		height:    height,
		minHeight: minHeight,
		maxHeight: maxHeight,
		octaves:   octaves,
		eval:      noise.NewSimplex(),
	}, nil
}

// SetEvaluator swaps the noise backend used by subsequent Generate calls.
func (f *Field) SetEvaluator(e noise.Evaluator) {
	f.eval = e
}

// Width returns the field width in cells.
func (f *Field) Width() int { return f.width }

// Height returns the field height in cells.
func (f *Field) Height() int { return f.height }

// MinHeight returns the lower bound of the output height range.
func (f *Field) MinHeight() float64 { return f.minHeight }

// MaxHeight returns the upper bound of the output height range.
func (f *Field) MaxHeight() float64 { return f.maxHeight }

// Octaves returns the number of refinement octaves beyond the base octave.
func (f *Field) Octaves() int { return f.octaves }

// Generated reports whether a generation pass has populated the field.
func (f *Field) Generated() bool { return len(f.data) > 0 }

// Generate runs a full synthesis pass, drawing one 64-bit seed per octave
// from rng. A nil rng uses a time-seeded stream, making the result
// non-reproducible. The buffer is swapped in only after every octave has
// been accumulated, so a previously generated field is never left partially
// overwritten.
func (f *Field) Generate(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	data := make([]float64, f.width*f.height)

	// Tie the base feature size to the average grid dimension so features
	// scale sensibly for non-square fields.
	avg := (float64(f.width) + float64(f.height)) / 2
	freq := 1 / avg
	scale := 1.0

	// The base octave is halved and lifted so its expected range sits near
	// [0, 1]; refinement octaves add detail around that with no offset.
	f.eval.Configure(rng.Uint64(), freq)
	accumulateLayer(f.eval, f.width, f.height, 0.5*scale, 0.5*scale, data)
	for i := 0; i < f.octaves; i++ {
		freq *= octaveFrequencyStep
		scale /= octaveScaleDivisor
		f.eval.Configure(rng.Uint64(), freq)
		accumulateLayer(f.eval, f.width, f.height, scale, 0, data)
	}

	f.data = data
}

// GenerateSeeded runs Generate with a stream derived from seed. Equal seeds
// reproduce equal fields across runs.
func (f *Field) GenerateSeeded(seed uint64) {
	f.Generate(rand.New(rand.NewSource(int64(seed))))
}

// All iterates the field in storage order (row-major, x fastest), yielding
// each cell coordinate with a copy of its raw value. Before generation the
// sequence is empty. The sequence is finite and restartable; breaking out
// early and re-ranging starts over from (0, 0).
func (f *Field) All() iter.Seq2[Cell, float64] {
	return func(yield func(Cell, float64) bool) {
		for i, v := range f.data {
			if !yield(Cell{X: i % f.width, Y: i / f.width}, v) {
				return
			}
		}
	}
}

// Values returns a copy of the raw buffer, empty before generation.
func (f *Field) Values() []float64 {
	out := make([]float64, len(f.data))
	copy(out, f.data)
	return out
}
