// Package noise provides seedable 2D coherent-noise evaluators used as the
// primitive under fractal heightmap generation.
package noise

import (
	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Evaluator is a parameterized 2D noise function. Configure fully determines
// the output of Eval: two evaluators configured with the same seed and
// frequency return identical values for identical coordinates. Eval has no
// side effects and returns values roughly in [-1, 1].
type Evaluator interface {
	Configure(seed uint64, frequency float64)
	Eval(x, y float64) float64
}

// Backend names accepted by New.
const (
	BackendSimplex = "simplex"
	BackendPerlin  = "perlin"
)

// New returns the evaluator for the given backend name. Unknown names fall
// back to the simplex backend.
func New(backend string) Evaluator {
	if backend == BackendPerlin {
		return NewPerlin()
	}
	return NewSimplex()
}

// Simplex evaluates OpenSimplex noise.
type Simplex struct {
	noise     opensimplex.Noise
	frequency float64
}

// NewSimplex creates a simplex evaluator with a zero seed and unit frequency.
func NewSimplex() *Simplex {
	return &Simplex{noise: opensimplex.New(0), frequency: 1}
}

// Configure reseeds the generator and sets the sampling frequency.
func (s *Simplex) Configure(seed uint64, frequency float64) {
	s.noise = opensimplex.New(int64(seed))
	s.frequency = frequency
}

// Eval samples the noise at (x, y) scaled by the configured frequency.
func (s *Simplex) Eval(x, y float64) float64 {
	return s.noise.Eval2(x*s.frequency, y*s.frequency)
}

// Perlin gradient noise parameters. Alpha is the weight falloff between
// internal octaves, beta the frequency step, n the internal octave count.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Perlin evaluates classic Perlin gradient noise.
type Perlin struct {
	noise     *perlin.Perlin
	frequency float64
}

// NewPerlin creates a perlin evaluator with a zero seed and unit frequency.
func NewPerlin() *Perlin {
	return &Perlin{noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, 0), frequency: 1}
}

// Configure reseeds the generator and sets the sampling frequency.
func (p *Perlin) Configure(seed uint64, frequency float64) {
	p.noise = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, int64(seed))
	p.frequency = frequency
}

// Eval samples the noise at (x, y) scaled by the configured frequency.
func (p *Perlin) Eval(x, y float64) float64 {
	return p.noise.Noise2D(x*p.frequency, y*p.frequency)
}
