package heightfield

import (
	"testing"
)

func TestNewRejectsZeroDimensions(t *testing.T) {
	tests := []struct {
		width, height int
		wantErr       bool
	}{
		{4, 3, false},
		{1, 1, false},
		{0, 3, true},
		{4, 0, true},
		{0, 0, true},
		{-1, 3, true},
	}

	for _, tt := range tests {
		f, err := New(tt.width, tt.height, 0, 10, 2)
		if tt.wantErr {
			if err != ErrInvalidSize {
				t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", tt.width, tt.height, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%d, %d) unexpected error: %v", tt.width, tt.height, err)
			continue
		}
		if f.Width() != tt.width || f.Height() != tt.height {
			t.Errorf("New(%d, %d) size = (%d, %d)", tt.width, tt.height, f.Width(), f.Height())
		}
	}
}

func TestUngeneratedFieldIsEmpty(t *testing.T) {
	f, err := New(4, 3, 0, 10, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if f.Generated() {
		t.Error("Generated() = true before Generate")
	}

	count := 0
	for range f.All() {
		count++
	}
	if count != 0 {
		t.Errorf("All() yielded %d entries before Generate, want 0", count)
	}

	if len(f.Values()) != 0 {
		t.Errorf("Values() length = %d before Generate, want 0", len(f.Values()))
	}
}

func TestGenerateSeededDeterministic(t *testing.T) {
	a, _ := New(8, 5, 0, 10, 3)
	b, _ := New(8, 5, 0, 10, 3)

	a.GenerateSeeded(42)
	b.GenerateSeeded(42)

	va, vb := a.Values(), b.Values()
	if len(va) != len(vb) {
		t.Fatalf("buffer lengths differ: %d vs %d", len(va), len(vb))
	}
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("value[%d] = %v and %v for the same seed", i, va[i], vb[i])
		}
	}
}

func TestGenerateDistinctSeedsDiffer(t *testing.T) {
	a, _ := New(2, 2, 0, 10, 5)
	b, _ := New(2, 2, 0, 10, 5)

	a.GenerateSeeded(1)
	b.GenerateSeeded(2)

	va, vb := a.Values(), b.Values()
	var differs bool
	for i := range va {
		if va[i] != vb[i] {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("seeds 1 and 2 produced identical fields")
	}
}

func TestIterationShapeAndOrder(t *testing.T) {
	width, height := 4, 3
	f, _ := New(width, height, 0, 10, 0)
	f.GenerateSeeded(42)

	seen := make(map[Cell]bool)
	i := 0
	for cell := range f.All() {
		wantX, wantY := i%width, i/width
		if cell.X != wantX || cell.Y != wantY {
			t.Errorf("entry %d at (%d,%d), want (%d,%d)", i, cell.X, cell.Y, wantX, wantY)
		}
		if seen[cell] {
			t.Errorf("cell (%d,%d) yielded twice", cell.X, cell.Y)
		}
		seen[cell] = true
		i++
	}

	if i != width*height {
		t.Errorf("All() yielded %d entries, want %d", i, width*height)
	}
}

func TestIterationRestartable(t *testing.T) {
	f, _ := New(3, 3, 0, 10, 1)
	f.GenerateSeeded(7)

	// Break out early, then iterate again from the start.
	for range f.All() {
		break
	}

	first := Cell{X: -1, Y: -1}
	count := 0
	for cell := range f.All() {
		if count == 0 {
			first = cell
		}
		count++
	}
	if first.X != 0 || first.Y != 0 {
		t.Errorf("restarted iteration began at (%d,%d), want (0,0)", first.X, first.Y)
	}
	if count != 9 {
		t.Errorf("restarted iteration yielded %d entries, want 9", count)
	}
}

func TestGenerateReplacesBuffer(t *testing.T) {
	f, _ := New(4, 4, 0, 10, 2)
	f.GenerateSeeded(1)
	before := f.Values()

	f.GenerateSeeded(2)
	after := f.Values()

	if len(before) != len(after) {
		t.Fatalf("buffer length changed: %d vs %d", len(before), len(after))
	}
	var differs bool
	for i := range before {
		if before[i] != after[i] {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("regeneration with a new seed left the buffer unchanged")
	}
}

func TestValuesReturnsCopy(t *testing.T) {
	f, _ := New(2, 2, 0, 10, 0)
	f.GenerateSeeded(42)

	v := f.Values()
	v[0] = 12345

	if f.Values()[0] == 12345 {
		t.Error("mutating the Values() slice altered the field buffer")
	}
}

func TestOctaveScaleDecay(t *testing.T) {
	// Each refinement octave must contribute strictly less than the one
	// before it: scale starts at 1 and is divided by 6 per octave.
	scale := 1.0
	prev := 0.5 * scale // base octave contribution
	for i := 0; i < 5; i++ {
		scale /= octaveScaleDivisor
		if scale >= prev {
			t.Fatalf("octave %d scale %v did not decay below %v", i+1, scale, prev)
		}
		prev = scale
	}
}

func TestGenerateWithPerOctaveEvaluator(t *testing.T) {
	// With a constant evaluator the expected sum is exact:
	// base 1*0.5 + 0.5, then octaves adding 1/6, 1/36, ...
	f, _ := New(3, 2, 0, 1, 2)
	f.SetEvaluator(&constEvaluator{value: 1})
	f.GenerateSeeded(0)

	want := 0.5 + 0.5 + 1.0/6 + 1.0/36
	for cell, v := range f.All() {
		if diff := v - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("cell (%d,%d) = %v, want %v", cell.X, cell.Y, v, want)
		}
	}
}

func TestGenerateNilRNG(t *testing.T) {
	f, _ := New(4, 4, 0, 10, 1)
	f.Generate(nil)

	if !f.Generated() {
		t.Fatal("Generate(nil) left the field ungenerated")
	}
	if len(f.Values()) != 16 {
		t.Errorf("buffer length = %d, want 16", len(f.Values()))
	}
}
