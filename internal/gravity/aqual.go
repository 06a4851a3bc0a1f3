package gravity

import (
	"context"
	"fmt"
	"math"

	"github.com/astrobits/clustergen/internal/fields"
	"github.com/astrobits/clustergen/internal/numeric"
	"github.com/astrobits/clustergen/internal/units"
)

// AQUAL is the aquadratic-Lagrangian formulation of MOND. Computing the
// potential from a mass profile requires solving, at every radius, the
// implicit equation t*mu(t) = gamma(r) for the true acceleration ratio t,
// where gamma is the Newtonian acceleration in units of a0.
type AQUAL struct {
	cfg Config
}

func (a *AQUAL) Name() string { return "aqual" }

func (a *AQUAL) Methods() []Method {
	return []Method{
		{
			Name:     "from_field",
			Requires: []string{"radius", "gravitational_field"},
			Compute:  a.fromField,
		},
		{
			Name:     "from_density",
			Requires: []string{"total_density", "radius", "total_mass"},
			Compute:  a.fromDensity,
		},
	}
}

func (a *AQUAL) ComputePotential(ctx context.Context, fs *fields.Set) ([]float64, error) {
	return dispatch(ctx, fs, a.Name(), a.Methods())
}

// fromField integrates the field outward with the MOND deep-field gauge
// term rmax*ln(2)*sqrt(a0*mu*g) at the outer edge.
func (a *AQUAL) fromField(_ context.Context, fs *fields.Set) ([]float64, error) {
	rr := fs.Radius()
	gf := fs.Get("gravitational_field")
	mu := a.cfg.interp()
	a0 := a.cfg.A0

	s, err := numeric.NewSpline(rr, gf)
	if err != nil {
		return nil, err
	}
	last := len(rr) - 1
	gEdge := math.Abs(gf[last])
	p0 := rr[last] * math.Ln2 * math.Sqrt(a0*mu(gEdge/a0)*gEdge)

	pot := numeric.Integrate(s.Eval, rr, 0)
	for i := range pot {
		pot[i] = -(pot[i] + p0)
	}
	return pot, nil
}

// fromDensity solves the implicit MOND equation on an extended radial grid
// (the mass profile continues flat past the last sample to keep the outward
// integral convergent to the 2*rmax gauge radius).
func (a *AQUAL) fromDensity(ctx context.Context, fs *fields.Set) ([]float64, error) {
	rr := fs.Radius()
	tmass := fs.Get("total_mass")
	mu := a.cfg.interp()
	a0 := a.cfg.A0

	n := len(rr)
	rmax := rr[n-1]
	x := numeric.Geomspace(rr[0], 3*rmax, 3*n)

	ms, err := numeric.NewSpline(rr, tmass)
	if err != nil {
		return nil, err
	}
	gamma := make([]float64, len(x))
	for i, xi := range x {
		m := tmass[n-1]
		if xi <= rmax {
			m = ms.Eval(xi)
		}
		gamma[i] = units.G * m / (a0 * xi * xi)
	}

	guess := make([]float64, len(gamma))
	for i, g := range gamma {
		sg := sign(g)
		guess[i] = 0.5 * (g + sg*math.Sqrt(g*g+4*sg*g))
	}

	resid := func(t []float64) []float64 {
		out := make([]float64, len(t))
		for i := range t {
			out[i] = t[i]*mu(t[i]) - gamma[i]
		}
		return out
	}

	sol := guess
	if maxAbs(resid(guess)) > a.cfg.CheckTol {
		log.Info("implicit guess was not sufficiently accurate, refining")
		sctx, cancel := context.WithTimeout(ctx, a.cfg.MaxRuntime)
		refined, err := solveVector(sctx, resid, guess, a.cfg.MaxCalls)
		cancel()
		switch {
		case err == nil:
			sol = refined
		case err == ErrSolveBudget:
			log.Warnf("implicit solve did not converge within %d calls, using best iterate", a.cfg.MaxCalls)
			sol = refined
		default:
			log.Warnf("implicit solve timed out after %v, using guess solution; this is usually driven by non-physical profile attributes", a.cfg.MaxRuntime)
		}
	}

	gs, err := numeric.NewSpline(x, sol)
	if err != nil {
		return nil, err
	}
	pot := numeric.Integrate(gs.Eval, rr, 2*rmax)
	for i := range pot {
		pot[i] = -a0 * pot[i]
	}
	return pot, nil
}

// ComputeMass is the Newtonian dynamical mass scaled by the interpolation
// function at |g|/a0.
func (a *AQUAL) ComputeMass(fs *fields.Set) ([]float64, error) {
	if !fs.Has("radius", "gravitational_field") {
		return nil, fmt.Errorf("aqual dynamical mass requires {radius, gravitational_field}")
	}
	rr := fs.Radius()
	gf := fs.Get("gravitational_field")
	mu := a.cfg.interp()
	out := make([]float64, len(rr))
	for i := range out {
		out[i] = -rr[i] * rr[i] * gf[i] / units.G * mu(math.Abs(gf[i])/a.cfg.A0)
	}
	return out, nil
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
