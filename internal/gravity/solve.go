package gravity

import (
	"context"
	"errors"
	"math"
)

// ErrSolveBudget reports that a refinement solve ran out of residual-call
// budget before reaching tolerance.
var ErrSolveBudget = errors.New("implicit solve exhausted call budget")

const solveResidTol = 1e-9

// solveVector refines a root of f(x) = 0 for systems whose i-th equation
// depends only on x[i] (one implicit MOND equation per grid point). It is a
// damped Newton iteration with a shared finite-difference perturbation,
// which is exact for the diagonal Jacobian these systems have. The context
// carries the wall-clock deadline: on expiry the best iterate so far is
// returned with the context error, and the caller decides what to degrade
// to.
func solveVector(ctx context.Context, f func([]float64) []float64, guess []float64, maxCalls int) ([]float64, error) {
	x := make([]float64, len(guess))
	copy(x, guess)
	calls := 0

	for {
		if err := ctx.Err(); err != nil {
			return x, err
		}

		r := f(x)
		calls++
		if maxAbs(r) < solveResidTol {
			return x, nil
		}
		if calls >= maxCalls {
			return x, ErrSolveBudget
		}

		xp := make([]float64, len(x))
		for i := range x {
			xp[i] = x[i] + 1e-7*(1.0+math.Abs(x[i]))
		}
		rp := f(xp)
		calls++

		for i := range x {
			d := (rp[i] - r[i]) / (xp[i] - x[i])
			if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
				continue
			}
			step := r[i] / d
			// Damp large corrections to keep the iterate in the
			// physical branch.
			if limit := 1.0 + math.Abs(x[i]); math.Abs(step) > limit {
				step = math.Copysign(limit, step)
			}
			x[i] -= step
		}
	}
}

func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}
