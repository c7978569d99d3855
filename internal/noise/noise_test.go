package noise

import "testing"

func TestNewBackendSelection(t *testing.T) {
	tests := []struct {
		backend     string
		wantSimplex bool
	}{
		{BackendSimplex, true},
		{BackendPerlin, false},
		{"", true},
		{"something-else", true},
	}

	for _, tt := range tests {
		e := New(tt.backend)
		_, isSimplex := e.(*Simplex)
		if isSimplex != tt.wantSimplex {
			t.Errorf("New(%q) simplex = %v, want %v", tt.backend, isSimplex, tt.wantSimplex)
		}
	}
}

func TestEvaluatorsDeterministic(t *testing.T) {
	for _, backend := range []string{BackendSimplex, BackendPerlin} {
		a := New(backend)
		b := New(backend)
		a.Configure(42, 0.05)
		b.Configure(42, 0.05)

		for i := 0; i < 16; i++ {
			x, y := float64(i), float64(i*3)
			va, vb := a.Eval(x, y), b.Eval(x, y)
			if va != vb {
				t.Errorf("%s: Eval(%v, %v) = %v and %v for identical configuration", backend, x, y, va, vb)
			}
		}
	}
}

func TestConfigureChangesOutput(t *testing.T) {
	for _, backend := range []string{BackendSimplex, BackendPerlin} {
		e := New(backend)

		e.Configure(1, 0.05)
		first := make([]float64, 8)
		for i := range first {
			first[i] = e.Eval(float64(i), float64(i)+0.5)
		}

		e.Configure(2, 0.05)
		var differs bool
		for i := range first {
			if e.Eval(float64(i), float64(i)+0.5) != first[i] {
				differs = true
				break
			}
		}
		if !differs {
			t.Errorf("%s: reseeding produced identical samples", backend)
		}
	}
}

func TestEvalStaysNearUnitRange(t *testing.T) {
	for _, backend := range []string{BackendSimplex, BackendPerlin} {
		e := New(backend)
		e.Configure(7, 0.1)
		for i := 0; i < 256; i++ {
			v := e.Eval(float64(i%16), float64(i/16))
			if v < -1.5 || v > 1.5 {
				t.Errorf("%s: Eval = %v, want within [-1.5, 1.5]", backend, v)
			}
		}
	}
}
