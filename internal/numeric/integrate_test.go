package numeric

import (
	"math"
	"testing"
)

func TestIntegrateMass_ConstantDensity(t *testing.T) {
	rho := 100.0
	rr := Geomspace(1, 1000, 50)
	mass := IntegrateMass(func(r float64) float64 { return rho }, rr)
	for i, r := range rr {
		want := 4.0 / 3.0 * math.Pi * rho * r * r * r
		if math.Abs(mass[i]-want)/want > 1e-8 {
			t.Fatalf("r=%v: expected %v, got %v", r, want, mass[i])
		}
	}
}

func TestIntegrateMass_Monotonic(t *testing.T) {
	rr := Geomspace(1, 5000, 200)
	mass := IntegrateMass(func(r float64) float64 { return 1.0 / (r * (1 + r) * (1 + r)) }, rr)
	for i := 1; i < len(mass); i++ {
		if mass[i] <= mass[i-1] {
			t.Fatalf("enclosed mass not increasing at index %d: %v <= %v", i, mass[i], mass[i-1])
		}
	}
}

func TestIntegrate_ConstantIntegrand(t *testing.T) {
	rr := Linspace(0, 10, 11)
	out := Integrate(func(r float64) float64 { return 1.0 }, rr, 0)
	for i, r := range rr {
		want := 10.0 - r
		if math.Abs(out[i]-want) > 1e-10 {
			t.Fatalf("r=%v: expected %v, got %v", r, want, out[i])
		}
	}
}

func TestIntegrateToInf(t *testing.T) {
	rr := Geomspace(1, 100, 20)
	out := IntegrateToInf(func(r float64) float64 { return 1.0 / (r * r) }, rr)
	for i, r := range rr {
		want := 1.0 / r
		if math.Abs(out[i]-want)/want > 1e-6 {
			t.Fatalf("r=%v: expected %v, got %v", r, want, out[i])
		}
	}
}

func TestCumTrapz_Linear(t *testing.T) {
	x := Linspace(0, 5, 51)
	y := make([]float64, len(x))
	for i := range x {
		y[i] = 2 * x[i]
	}
	out := CumTrapz(y, x, 0)
	for i := range x {
		want := x[i] * x[i]
		if math.Abs(out[i]-want) > 1e-12 {
			t.Fatalf("x=%v: expected %v, got %v", x[i], want, out[i])
		}
	}
}

func TestCumTrapz_Initial(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{1, 1, 1}
	out := CumTrapz(y, x, 10)
	if out[0] != 10 || out[2] != 12 {
		t.Errorf("expected [10 11 12], got %v", out)
	}
}

func TestGeomspace(t *testing.T) {
	g := Geomspace(1, 1000, 4)
	want := []float64{1, 10, 100, 1000}
	for i := range want {
		if math.Abs(g[i]-want[i])/want[i] > 1e-12 {
			t.Errorf("index %d: expected %v, got %v", i, want[i], g[i])
		}
	}
}

func TestLinspace(t *testing.T) {
	l := Linspace(0, 1, 5)
	if l[0] != 0 || l[4] != 1 || math.Abs(l[2]-0.5) > 1e-15 {
		t.Errorf("unexpected linspace: %v", l)
	}
}

func TestInterp(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 10, 20}

	if v := Interp(0.5, xs, ys); math.Abs(v-5) > 1e-12 {
		t.Errorf("midpoint: expected 5, got %v", v)
	}
	if v := Interp(-1, xs, ys); v != 0 {
		t.Errorf("left boundary hold: expected 0, got %v", v)
	}
	if v := Interp(5, xs, ys); v != 20 {
		t.Errorf("right boundary hold: expected 20, got %v", v)
	}
}
