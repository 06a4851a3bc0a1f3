package gravity

import (
	"context"
	"fmt"
	"math"

	"github.com/astrobits/clustergen/internal/fields"
	"github.com/astrobits/clustergen/internal/numeric"
	"github.com/astrobits/clustergen/internal/units"
)

// EMOND generalizes MOND by letting the acceleration scale a0 depend on the
// local potential. The potential then obeys a scalar ODE in radius, which is
// integrated inward from the outer grid edge with the boundary value fixed
// to zero there.
type EMOND struct {
	cfg Config
}

func (e *EMOND) Name() string { return "emond" }

func (e *EMOND) Methods() []Method {
	return []Method{
		{
			Name:     "from_mass",
			Requires: []string{"radius", "total_mass"},
			Compute:  e.fromMass,
		},
	}
}

func (e *EMOND) ComputePotential(ctx context.Context, fs *fields.Set) ([]float64, error) {
	return dispatch(ctx, fs, e.Name(), e.Methods())
}

// fromMass integrates dphi/dr = F(r, phi) from rmax down to the innermost
// radius. The Newtonian acceleration gamma = G*M/r^2 is extended beyond the
// grid by a smoothly truncated power law so the stepper can evaluate the
// right hand side slightly past rmax.
func (e *EMOND) fromMass(_ context.Context, fs *fields.Set) ([]float64, error) {
	rr := fs.Radius()
	tmass := fs.Get("total_mass")
	n := len(rr)
	rmax := rr[n-1]
	alpha := e.cfg.Alpha

	gamma := make([]float64, n)
	for i := range rr {
		gamma[i] = units.G * tmass[i] / (rr[i] * rr[i])
	}
	gs, err := numeric.NewSpline(rr, gamma)
	if err != nil {
		return nil, err
	}
	gExt := numeric.TruncateSpline(gs, rmax, 7)

	rhs := func(r, phi float64) float64 {
		a0 := e.cfg.a0At(phi)
		gf := gExt(r) / a0
		return a0 * math.Pow(1+math.Sqrt(1+4*math.Pow(gf, -alpha)), 1/alpha) * gf / math.Pow(2, 1/alpha)
	}

	// March on the reversed grid so the t=0 boundary sits at rmax.
	rev := make([]float64, n)
	for i := range rev {
		rev[i] = rr[n-1-i]
	}
	sol := numeric.SolveIVP(rhs, rev, 0, 1e-8)

	pot := make([]float64, n)
	for i := range pot {
		pot[i] = sol[n-1-i]
	}
	if err := fs.Put("newtonian_field", gamma, "kpc/Myr**2"); err != nil {
		return nil, err
	}
	return pot, nil
}

// ComputeMass uses the local potential to set the acceleration scale before
// applying the interpolation-function correction to the Newtonian mass.
func (e *EMOND) ComputeMass(fs *fields.Set) ([]float64, error) {
	if !fs.Has("radius", "gravitational_field", "gravitational_potential") {
		return nil, fmt.Errorf("emond dynamical mass requires {radius, gravitational_field, gravitational_potential}")
	}
	rr := fs.Radius()
	gf := fs.Get("gravitational_field")
	pot := fs.Get("gravitational_potential")
	mu := e.cfg.interp()

	out := make([]float64, len(rr))
	for i := range rr {
		a0 := e.cfg.a0At(pot[i])
		out[i] = -rr[i] * rr[i] * gf[i] / units.G * mu(math.Abs(gf[i])/a0)
	}
	return out, nil
}
