package gravity

import (
	"context"
	"fmt"
	"math"

	"github.com/astrobits/clustergen/internal/fields"
	"github.com/astrobits/clustergen/internal/numeric"
	"github.com/astrobits/clustergen/internal/units"
)

// Newtonian is standard gravity. The two potential methods are closed-form
// integrals; no implicit equation is involved.
type Newtonian struct {
	cfg Config
}

func (n *Newtonian) Name() string { return "newtonian" }

func (n *Newtonian) Methods() []Method {
	return []Method{
		{
			Name:     "from_field",
			Requires: []string{"radius", "gravitational_field"},
			Compute:  n.fromField,
		},
		{
			Name:     "from_density",
			Requires: []string{"total_density", "radius", "total_mass"},
			Compute:  n.fromDensity,
		},
	}
}

func (n *Newtonian) ComputePotential(ctx context.Context, fs *fields.Set) ([]float64, error) {
	return dispatch(ctx, fs, n.Name(), n.Methods())
}

// fromField integrates the gravitational field outward, with the monopole
// boundary term g(rmax)*rmax anchoring the gauge at infinity.
func (n *Newtonian) fromField(_ context.Context, fs *fields.Set) ([]float64, error) {
	rr := fs.Radius()
	gf := fs.Get("gravitational_field")

	s, err := numeric.NewSpline(rr, gf)
	if err != nil {
		return nil, err
	}
	pot := numeric.Integrate(s.Eval, rr, 0)
	edge := gf[len(gf)-1] * rr[len(rr)-1]
	for i := range pot {
		pot[i] = -(pot[i] + edge)
	}
	return pot, nil
}

// fromDensity uses the standard two-term Newtonian integral
// Phi = -G*(M(r)/r + 4*pi*Int_r^rmax rho(r') r' dr').
func (n *Newtonian) fromDensity(_ context.Context, fs *fields.Set) ([]float64, error) {
	rr := fs.Radius()
	tdens := fs.Get("total_density")
	tmass := fs.Get("total_mass")

	s, err := numeric.NewSpline(rr, tdens)
	if err != nil {
		return nil, err
	}
	inner := numeric.Integrate(func(x float64) float64 { return s.Eval(x) * x }, rr, 0)

	pot := make([]float64, len(rr))
	for i := range pot {
		pot[i] = -units.G * (tmass[i]/rr[i] + 4*math.Pi*inner[i])
	}
	return pot, nil
}

// ComputeMass is the algebraic inverse of the field relation:
// M_dyn(<r) = -r^2 g / G.
func (n *Newtonian) ComputeMass(fs *fields.Set) ([]float64, error) {
	if !fs.Has("radius", "gravitational_field") {
		return nil, fmt.Errorf("newtonian dynamical mass requires {radius, gravitational_field}")
	}
	rr := fs.Radius()
	gf := fs.Get("gravitational_field")
	out := make([]float64, len(rr))
	for i := range out {
		out[i] = -rr[i] * rr[i] * gf[i] / units.G
	}
	return out, nil
}
