package numeric

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	quadRelTol   = 1e-8
	quadAbsTol   = 1e-12
	quadMaxDepth = 24
)

// Quad computes the definite integral of f over [a, b] by adaptive bisection
// of fixed Gauss-Legendre panels. Each call is self-contained, so integrals
// over different intervals are independently reproducible.
func Quad(f func(float64) float64, a, b float64) float64 {
	v, _ := quadAdaptive(f, a, b, quadMaxDepth)
	return v
}

// QuadWarn is Quad plus a count of subintervals on which the local error
// estimate never met tolerance before the depth limit.
func QuadWarn(f func(float64) float64, a, b float64) (float64, int) {
	return quadAdaptive(f, a, b, quadMaxDepth)
}

func quadAdaptive(f func(float64) float64, a, b float64, depth int) (float64, int) {
	coarse := quad.Fixed(f, a, b, 10, quad.Legendre{}, 0)
	fine := quad.Fixed(f, a, b, 21, quad.Legendre{}, 0)
	diff := math.Abs(fine - coarse)
	if diff <= quadAbsTol+quadRelTol*math.Abs(fine) {
		return fine, 0
	}
	if depth == 0 {
		return fine, 1
	}
	mid := 0.5 * (a + b)
	if mid <= a || mid >= b {
		// Interval at floating-point resolution.
		return fine, 1
	}
	left, wl := quadAdaptive(f, a, mid, depth-1)
	right, wr := quadAdaptive(f, mid, b, depth-1)
	return left + right, wl + wr
}

// QuadToInf computes the improper integral of f from a to infinity via the
// substitution u = 1/r. The integrand must decay faster than 1/r for the
// result to be finite.
func QuadToInf(f func(float64) float64, a float64) float64 {
	if a <= 0 {
		panic("numeric: QuadToInf requires a > 0")
	}
	g := func(u float64) float64 {
		r := 1.0 / u
		return f(r) * r * r
	}
	v, _ := quadAdaptive(g, 0, 1.0/a, quadMaxDepth)
	return v
}
