package numeric

import (
	"math"
	"testing"
)

func TestSolveIVP_ExponentialDecay(t *testing.T) {
	ts := Linspace(0, 2, 41)
	sol := SolveIVP(func(_, y float64) float64 { return -y }, ts, 1.0, 1e-10)

	for i, ti := range ts {
		want := math.Exp(-ti)
		if math.Abs(sol[i]-want) > 1e-7 {
			t.Fatalf("t=%v: expected %v, got %v", ti, want, sol[i])
		}
	}
}

func TestSolveIVP_Logistic(t *testing.T) {
	// y' = y(1-y), y(0)=0.5 -> y(t) = 1/(1+exp(-t))
	ts := Linspace(0, 5, 51)
	sol := SolveIVP(func(_, y float64) float64 { return y * (1 - y) }, ts, 0.5, 1e-10)

	for i, ti := range ts {
		want := 1.0 / (1.0 + math.Exp(-ti))
		if math.Abs(sol[i]-want) > 1e-7 {
			t.Fatalf("t=%v: expected %v, got %v", ti, want, sol[i])
		}
	}
}

func TestSolveIVP_DescendingGrid(t *testing.T) {
	// Integrating y' = -y backwards from t=1 recovers the larger values.
	ts := Linspace(1, 0, 21)
	sol := SolveIVP(func(_, y float64) float64 { return -y }, ts, math.Exp(-1), 1e-10)

	last := len(ts) - 1
	if math.Abs(sol[last]-1.0) > 1e-7 {
		t.Errorf("expected y(0)=1, got %v", sol[last])
	}
	for i := 1; i < len(sol); i++ {
		if sol[i] <= sol[i-1] {
			t.Fatalf("solution should grow marching backwards, index %d", i)
		}
	}
}
