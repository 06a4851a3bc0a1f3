package numeric

import (
	"math"
	"testing"
)

func TestSpline_EvalAndDeriv(t *testing.T) {
	xs := Linspace(0, 10, 201)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = x * x
	}
	s := MustSpline(xs, ys)

	for _, x := range []float64{1.0, 3.3, 7.7, 9.0} {
		if v := s.Eval(x); math.Abs(v-x*x) > 1e-6 {
			t.Errorf("eval at %v: expected %v, got %v", x, x*x, v)
		}
		if d := s.Deriv(x); math.Abs(d-2*x)/(2*x) > 1e-3 {
			t.Errorf("deriv at %v: expected %v, got %v", x, 2*x, d)
		}
	}
}

func TestSpline_LogDeriv(t *testing.T) {
	// f(x) = x^-3 has constant logarithmic slope -3.
	xs := Geomspace(1, 100, 400)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = math.Pow(x, -3)
	}
	s := MustSpline(xs, ys)

	for _, x := range []float64{2, 10, 50} {
		if ld := s.LogDeriv(x); math.Abs(ld+3) > 1e-2 {
			t.Errorf("log deriv at %v: expected -3, got %v", x, ld)
		}
	}
}

func TestNewSpline_TooFewPoints(t *testing.T) {
	if _, err := NewSpline([]float64{1, 2}, []float64{1, 2}); err == nil {
		t.Error("expected error for 2-point fit")
	}
}

func TestTruncateSpline(t *testing.T) {
	xs := Geomspace(1, 1000, 300)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = math.Pow(x, -2)
	}
	s := MustSpline(xs, ys)
	rt := 500.0
	f := TruncateSpline(s, rt, 7)

	// Continuous through the truncation radius.
	below, above := f(rt*0.99), f(rt*1.01)
	if math.Abs(below-above)/below > 0.05 {
		t.Errorf("discontinuity at truncation radius: %v vs %v", below, above)
	}

	// Follows the spline well inside rt.
	if v := f(10); math.Abs(v-s.Eval(10))/s.Eval(10) > 1e-3 {
		t.Errorf("inside truncation: expected %v, got %v", s.Eval(10), v)
	}

	// Extends as the log-slope power law well outside rt.
	want := s.Eval(rt) * math.Pow(4000/rt, -2)
	if v := f(4000); math.Abs(v-want)/want > 0.1 {
		t.Errorf("outside truncation: expected about %v, got %v", want, v)
	}

	// Still decaying.
	if f(8000) >= f(4000) {
		t.Error("truncated profile should keep decaying")
	}
}
