package numeric

import (
	"math"
	"testing"
)

func TestQuad_Polynomial(t *testing.T) {
	v := Quad(func(x float64) float64 { return x * x * x }, 0, 1)
	if math.Abs(v-0.25) > 1e-10 {
		t.Errorf("expected 0.25, got %v", v)
	}
}

func TestQuad_Sine(t *testing.T) {
	v := Quad(math.Sin, 0, math.Pi)
	if math.Abs(v-2.0) > 1e-8 {
		t.Errorf("expected 2, got %v", v)
	}
}

func TestQuad_ReversedBounds(t *testing.T) {
	v := Quad(func(x float64) float64 { return x }, 0, 2)
	w := Quad(func(x float64) float64 { return x }, 2, 0)
	if math.Abs(v+w) > 1e-10 {
		t.Errorf("reversed bounds should negate: %v vs %v", v, w)
	}
}

func TestQuadToInf_InverseSquare(t *testing.T) {
	v := QuadToInf(func(x float64) float64 { return 1.0 / (x * x) }, 1)
	if math.Abs(v-1.0) > 1e-6 {
		t.Errorf("expected 1, got %v", v)
	}
}

func TestQuadToInf_SteepTail(t *testing.T) {
	// Int_2^inf x^-4 dx = 1/(3*8)
	v := QuadToInf(func(x float64) float64 { return math.Pow(x, -4) }, 2)
	want := 1.0 / 24.0
	if math.Abs(v-want)/want > 1e-6 {
		t.Errorf("expected %v, got %v", want, v)
	}
}
