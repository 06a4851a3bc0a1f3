package gravity

import (
	"context"
	"fmt"
	"math"

	"github.com/astrobits/clustergen/internal/fields"
	"github.com/astrobits/clustergen/internal/numeric"
	"github.com/astrobits/clustergen/internal/units"
)

// QUMOND is the quasi-linear formulation of MOND. The potential follows from
// the Newtonian acceleration through the nu interpolation function, so no
// implicit solve is needed there; the dynamical mass inverts nu(x)*x = g/a0
// per radius instead.
type QUMOND struct {
	cfg Config
}

func (q *QUMOND) Name() string { return "qumond" }

func (q *QUMOND) Methods() []Method {
	return []Method{
		{
			Name:     "from_field",
			Requires: []string{"radius", "gravitational_field"},
			Compute:  q.fromField,
		},
		{
			Name:     "from_density",
			Requires: []string{"total_density", "radius", "total_mass"},
			Compute:  q.fromDensity,
		},
	}
}

func (q *QUMOND) ComputePotential(ctx context.Context, fs *fields.Set) ([]float64, error) {
	return dispatch(ctx, fs, q.Name(), q.Methods())
}

func (q *QUMOND) fromField(_ context.Context, fs *fields.Set) ([]float64, error) {
	rr := fs.Radius()
	gf := fs.Get("gravitational_field")

	s, err := numeric.NewSpline(rr, gf)
	if err != nil {
		return nil, err
	}
	last := len(rr) - 1
	p0 := math.Ln2 * gf[last] * rr[last]

	pot := numeric.Integrate(s.Eval, rr, 0)
	for i := range pot {
		pot[i] = -(pot[i] + p0)
	}
	return pot, nil
}

// fromDensity continues the mass profile flat past the grid edge (constant
// mass, so the QUMOND acceleration falls as 1/r) and integrates the MONDian
// gradient out to the gauge radius 2*rmax, where the far-field acceleration
// would otherwise make the integral to infinity diverge.
func (q *QUMOND) fromDensity(_ context.Context, fs *fields.Set) ([]float64, error) {
	rr := fs.Radius()
	tmass := fs.Get("total_mass")
	nu := q.cfg.interpNu()
	a0 := q.cfg.A0

	n := len(rr)
	rmax := rr[n-1]
	ext := numeric.Geomspace(rmax, 3*rmax, 2*n)[1:]
	rc := append(append([]float64{}, rr...), ext...)

	dphi := make([]float64, len(rc))
	for i, r := range rc {
		m := tmass[n-1]
		if i < n {
			m = tmass[i]
		}
		nAccel := units.G * m / (r * r)
		dphi[i] = nu(math.Abs(nAccel)/a0) * nAccel
	}

	s, err := numeric.NewSpline(rc, dphi)
	if err != nil {
		return nil, err
	}
	pot := numeric.Integrate(s.Eval, rr, 2*rmax)
	for i := range pot {
		pot[i] = -pot[i]
	}
	return pot, nil
}

// ComputeMass solves nu(x)*x = |g|/a0 for the Newtonian acceleration ratio x
// at each radius, seeded by the deep-MOND guess sqrt(|g|/a0), and converts
// it back to an enclosed mass.
func (q *QUMOND) ComputeMass(fs *fields.Set) ([]float64, error) {
	if !fs.Has("radius", "gravitational_field") {
		return nil, fmt.Errorf("qumond dynamical mass requires {radius, gravitational_field}")
	}
	rr := fs.Radius()
	gf := fs.Get("gravitational_field")
	nu := q.cfg.interpNu()
	a0 := q.cfg.A0

	y := make([]float64, len(rr))
	guess := make([]float64, len(rr))
	for i, g := range gf {
		y[i] = math.Abs(g) / a0
		guess[i] = math.Sqrt(y[i])
	}
	resid := func(x []float64) []float64 {
		out := make([]float64, len(x))
		for i := range x {
			out[i] = nu(x[i])*x[i] - y[i]
		}
		return out
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.cfg.MaxRuntime)
	defer cancel()
	sol, err := solveVector(ctx, resid, guess, q.cfg.MaxCalls)
	if err != nil {
		log.Warnf("qumond mass solve degraded (%v), result uses best iterate", err)
	}

	out := make([]float64, len(rr))
	for i := range out {
		out[i] = a0 * rr[i] * rr[i] / units.G * sol[i]
	}
	return out, nil
}
