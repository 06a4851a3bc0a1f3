package numeric

import (
	"math"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var log = logrus.WithField("component", "numeric")

// IntegrateMass computes the enclosed mass 4*pi*Int_0^{r_i} f(r) r^2 dr at
// every radius of the ascending grid rr. Each point is an independent
// adaptive integral from the origin, which keeps cuspy profiles accurate at
// small radii where a cumulative trapezoid would not be.
func IntegrateMass(f func(float64) float64, rr []float64) []float64 {
	integrand := func(r float64) float64 { return f(r) * r * r }
	out := make([]float64, len(rr))
	warns := forEachPoint(rr, func(i int) int {
		v, w := QuadWarn(integrand, 0, rr[i])
		out[i] = 4 * math.Pi * v
		return w
	})
	warnIntegration(warns)
	return out
}

// Integrate computes Int_{r_i}^{rmax} f dr for every grid point. A
// non-positive rmax defaults to the outermost grid radius.
func Integrate(f func(float64) float64, rr []float64, rmax float64) []float64 {
	if rmax <= 0 {
		rmax = rr[len(rr)-1]
	}
	out := make([]float64, len(rr))
	warns := forEachPoint(rr, func(i int) int {
		v, w := QuadWarn(f, rr[i], rmax)
		out[i] = v
		return w
	})
	warnIntegration(warns)
	return out
}

// IntegrateToInf is Integrate with rmax at the outer grid edge plus the tail
// integral from that edge to infinity added to every point.
func IntegrateToInf(f func(float64) float64, rr []float64) []float64 {
	out := Integrate(f, rr, rr[len(rr)-1])
	tail := QuadToInf(f, rr[len(rr)-1])
	for i := range out {
		out[i] += tail
	}
	return out
}

// forEachPoint fans the per-point work out over the available CPUs. Each
// point's integral is self-contained, so the result is identical to the
// serial loop.
func forEachPoint(rr []float64, work func(i int) int) int {
	warns := make([]int, len(rr))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range rr {
		i := i
		g.Go(func() error {
			warns[i] = work(i)
			return nil
		})
	}
	g.Wait()
	total := 0
	for _, w := range warns {
		total += w
	}
	return total
}

func warnIntegration(n int) {
	if n > 0 {
		log.Warnf("detected %d tolerance warnings from integration, likely due to physicality issues", n)
	}
}

// CumTrapz returns the running trapezoid integral of y over x, starting at
// initial.
func CumTrapz(y, x []float64, initial float64) []float64 {
	out := make([]float64, len(y))
	acc := initial
	out[0] = acc
	for i := 1; i < len(y); i++ {
		acc += 0.5 * (y[i] + y[i-1]) * (x[i] - x[i-1])
		out[i] = acc
	}
	return out
}

// Geomspace returns n log-spaced points from a to b inclusive.
func Geomspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	la, lb := math.Log10(a), math.Log10(b)
	for i := range out {
		out[i] = math.Pow(10, la+(lb-la)*float64(i)/float64(n-1))
	}
	out[0], out[n-1] = a, b
	return out
}

// Linspace returns n evenly spaced points from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	out[n-1] = b
	return out
}

// Interp linearly interpolates y(x) at xi over the ascending grid xs, holding
// the boundary values outside the grid.
func Interp(xi float64, xs, ys []float64) float64 {
	n := len(xs)
	if xi <= xs[0] {
		return ys[0]
	}
	if xi >= xs[n-1] {
		return ys[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= xi {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := (xi - xs[lo]) / (xs[hi] - xs[lo])
	return ys[lo] + t*(ys[hi]-ys[lo])
}
