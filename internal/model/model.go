// Package model builds self-consistent radial cluster models in hydrostatic
// equilibrium. Each builder starts from a different pair of input profiles,
// derives the remaining thermodynamic fields from dP/dr = rho*g, and funnels
// into a shared backfill that computes the potential, component masses, and
// derived diagnostic fields.
package model

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/astrobits/clustergen/internal/fields"
	"github.com/astrobits/clustergen/internal/gravity"
	"github.com/astrobits/clustergen/internal/numeric"
	"github.com/astrobits/clustergen/internal/profiles"
	"github.com/astrobits/clustergen/internal/units"
)

var log = logrus.WithField("component", "model")

// ErrNonPhysical reports a model whose component subtraction produced a
// non-positive dark matter content. Such a model cannot be used as an
// initial condition and the build is aborted.
var ErrNonPhysical = errors.New("model is not physical")

// Model is a radial cluster model: a shared log-spaced radius grid with
// co-indexed physical fields, plus the build parameters that produced it.
type Model struct {
	N      int
	Fields *fields.Set
	Params map[string]float64
}

// Options carry the optional collaborators of a build. Law is consulted by
// FromDensAndTemp to turn the hydrostatic field into a dynamical mass; a nil
// Law means Newtonian with the default configuration. The other builders
// always construct the field as the Newtonian -G*M/r^2 of their total mass;
// alternative gravity enters afterwards through ApplyGravity. Fgas > 0
// requests a rescaling of the gas density so the enclosed gas fraction at
// radius RFgas equals Fgas (only honored by FromEntrAndTden).
type Options struct {
	Stellar *profiles.Profile
	Law     gravity.Law
	Fgas    float64
	RFgas   float64
}

func (o Options) law() (gravity.Law, error) {
	if o.Law != nil {
		return o.Law, nil
	}
	return gravity.New("newtonian", gravity.DefaultConfig())
}

func newModel(rmin, rmax float64, n int) *Model {
	return &Model{
		N:      n,
		Fields: fields.New(n),
		Params: map[string]float64{"rmin": rmin, "rmax": rmax},
	}
}

// FromDensAndTemp builds a model from gas density and temperature profiles.
// Pressure follows from the ideal gas law, the gravitational field from the
// hydrostatic condition, and the total mass from the dynamical mass of the
// configured gravity law.
func FromDensAndTemp(ctx context.Context, rmin, rmax float64, n int, dens, temp profiles.Profile, opts Options) (*Model, error) {
	law, err := opts.law()
	if err != nil {
		return nil, err
	}
	log.Infof("building model from density and temperature with %s gravity", law.Name())

	m := newModel(rmin, rmax, n)
	rr := numeric.Geomspace(rmin, rmax, n)
	density := dens.Sample(rr)
	temperature := temp.Sample(rr)

	pressure := make([]float64, n)
	for i := range pressure {
		pressure[i] = density[i] * temperature[i] * units.KeV / (units.Mu * units.Mp)
	}
	pSpl, err := numeric.NewSpline(rr, pressure)
	if err != nil {
		return nil, err
	}
	g := make([]float64, n)
	for i := range g {
		g[i] = pSpl.Deriv(rr[i]) / density[i]
	}

	fs := m.Fields
	if err := putAll(fs,
		field{"radius", rr, "kpc"},
		field{"density", density, "Msun/kpc**3"},
		field{"temperature", temperature, "keV"},
		field{"pressure", pressure, "Msun/(kpc*Myr**2)"},
		field{"gravitational_field", g, "kpc/Myr**2"},
		field{"gas_mass", numeric.IntegrateMass(dens.Func(), rr), "Msun"},
	); err != nil {
		return nil, err
	}

	tmass, err := law.ComputeMass(fs)
	if err != nil {
		return nil, err
	}
	if err := fs.Put("total_mass", tmass, "Msun"); err != nil {
		return nil, err
	}
	mSpl, err := numeric.NewSpline(rr, tmass)
	if err != nil {
		return nil, err
	}
	tden := make([]float64, n)
	for i := range tden {
		tden[i] = mSpl.Deriv(rr[i]) / (4 * math.Pi * rr[i] * rr[i])
	}
	if err := fs.Put("total_density", tden, "Msun/kpc**3"); err != nil {
		return nil, err
	}
	return m, m.fromScratch(ctx, opts)
}

// FromDensAndTden builds a model from gas density and total density
// profiles. The gravitational field is the Newtonian field of the enclosed
// total mass, and pressure comes from integrating the hydrostatic condition
// outward to infinity with a 1/r^2 far-field continuation.
func FromDensAndTden(ctx context.Context, rmin, rmax float64, n int, dens, tden profiles.Profile, opts Options) (*Model, error) {
	log.Info("building model from density and total density")

	m := newModel(rmin, rmax, n)
	rr := numeric.Geomspace(rmin, rmax, n)
	density := dens.Sample(rr)

	if err := putAll(m.Fields,
		field{"radius", rr, "kpc"},
		field{"density", density, "Msun/kpc**3"},
		field{"total_density", tden.Sample(rr), "Msun/kpc**3"},
		field{"total_mass", numeric.IntegrateMass(tden.Func(), rr), "Msun"},
		field{"gas_mass", numeric.IntegrateMass(dens.Func(), rr), "Msun"},
	); err != nil {
		return nil, err
	}

	g, err := m.newtonianField()
	if err != nil {
		return nil, err
	}

	pressure, err := hsePressure(rr, density, g, dens.Func())
	if err != nil {
		return nil, err
	}
	temperature := make([]float64, n)
	for i := range temperature {
		temperature[i] = pressure[i] * units.Mu * units.Mp / (density[i] * units.KeV)
	}
	if err := putAll(m.Fields,
		field{"pressure", pressure, "Msun/(kpc*Myr**2)"},
		field{"temperature", temperature, "keV"},
	); err != nil {
		return nil, err
	}
	return m, m.fromScratch(ctx, opts)
}

// FromEntrAndTden builds a model from gas entropy and total density
// profiles. The hydrostatic condition is integrated in the variable P^(2/5),
// which is linear in the field for a polytropic K, then the gas density and
// pressure are optionally rescaled so the enclosed gas fraction at opts.RFgas
// matches opts.Fgas.
func FromEntrAndTden(ctx context.Context, rmin, rmax float64, n int, entr, tden profiles.Profile, opts Options) (*Model, error) {
	log.Info("building model from entropy and total density")

	m := newModel(rmin, rmax, n)
	rr := numeric.Geomspace(rmin, rmax, n)

	if err := putAll(m.Fields,
		field{"radius", rr, "kpc"},
		field{"total_density", tden.Sample(rr), "Msun/kpc**3"},
		field{"total_mass", numeric.IntegrateMass(tden.Func(), rr), "Msun"},
	); err != nil {
		return nil, err
	}

	g, err := m.newtonianField()
	if err != nil {
		return nil, err
	}
	gSpl, err := numeric.NewSpline(rr, g)
	if err != nil {
		return nil, err
	}

	// K converted from keV*cm^2 to code units so that P = K*(rho/(mue*mp))^(5/3).
	kCode := func(r float64) float64 { return entr.Eval(r) * units.KeVCm2 }
	mw := units.Mue * units.Mp
	last := n - 1
	integrand := func(r float64) float64 {
		// Past the grid edge K is held at its outermost value and the
		// field continued as g_max*(rmax/r)^2.
		if r > rr[last] {
			gr := g[last] * (rr[last] / r) * (rr[last] / r)
			return mw * math.Pow(kCode(rr[last]), -0.6) * gr
		}
		return mw * math.Pow(kCode(r), -0.6) * gSpl.Eval(r)
	}
	ii := numeric.Integrate(integrand, rr, 0)
	tail := numeric.QuadToInf(integrand, rr[last])

	density := make([]float64, n)
	pressure := make([]float64, n)
	for i := range rr {
		pressure[i] = math.Pow(-0.4*(ii[i]+tail), 2.5)
		density[i] = mw * math.Pow(pressure[i]/kCode(rr[i]), 0.6)
	}

	if opts.Fgas > 0 {
		rf := opts.RFgas
		if rf <= 0 {
			rf = rr[last]
		}
		dr2 := make([]float64, n)
		for i := range dr2 {
			dr2[i] = density[i] * rr[i] * rr[i]
		}
		mgas := numeric.CumTrapz(dr2, rr, 0)
		for i := range mgas {
			mgas[i] *= 4 * math.Pi
		}
		mgasRF := numeric.Interp(rf, rr, mgas)
		mtotRF := numeric.Interp(rf, rr, m.Fields.Get("total_mass"))
		scale := opts.Fgas * mtotRF / mgasRF
		log.Infof("rescaling gas density by %.4f to reach f_gas=%.3f at r=%.1f kpc", scale, opts.Fgas, rf)
		for i := range density {
			density[i] *= scale
			pressure[i] *= scale
		}
	}

	temperature := make([]float64, n)
	for i := range temperature {
		temperature[i] = pressure[i] * units.Mu * units.Mp / (density[i] * units.KeV)
	}
	densProfile, err := profiles.FromArray(rr, density)
	if err != nil {
		return nil, err
	}
	if err := putAll(m.Fields,
		field{"density", density, "Msun/kpc**3"},
		field{"pressure", pressure, "Msun/(kpc*Myr**2)"},
		field{"temperature", temperature, "keV"},
		field{"gas_mass", numeric.IntegrateMass(densProfile.Func(), rr), "Msun"},
	); err != nil {
		return nil, err
	}
	return m, m.fromScratch(ctx, opts)
}

// NoGas builds a gas-free model from a total density profile. Only the
// gravitating component fields are populated.
func NoGas(ctx context.Context, rmin, rmax float64, n int, tden profiles.Profile, opts Options) (*Model, error) {
	log.Info("building model without a gas component")

	m := newModel(rmin, rmax, n)
	rr := numeric.Geomspace(rmin, rmax, n)
	if err := putAll(m.Fields,
		field{"radius", rr, "kpc"},
		field{"total_density", tden.Sample(rr), "Msun/kpc**3"},
		field{"total_mass", numeric.IntegrateMass(tden.Func(), rr), "Msun"},
	); err != nil {
		return nil, err
	}
	if _, err := m.newtonianField(); err != nil {
		return nil, err
	}
	return m, m.fromScratch(ctx, opts)
}

// newtonianField computes and stores g = -G*M/r^2 from the total mass.
func (m *Model) newtonianField() ([]float64, error) {
	rr := m.Fields.Radius()
	tmass := m.Fields.Get("total_mass")
	g := make([]float64, len(rr))
	for i := range g {
		g[i] = -units.G * tmass[i] / (rr[i] * rr[i])
	}
	return g, m.Fields.Put("gravitational_field", g, "kpc/Myr**2")
}

// ApplyGravity reanalyzes the model under the given gravity law, computing
// the potential implied by the stored field. With force set, an existing
// potential is recomputed.
func (m *Model) ApplyGravity(ctx context.Context, law gravity.Law, force bool) error {
	return gravity.Potential(ctx, m.Fields, law, force)
}

// hsePressure integrates dP/dr = rho*g from each radius out to infinity.
// Past the outer grid edge the field is continued as g_max*(rmax/r)^2.
func hsePressure(rr, density, g []float64, dens func(float64) float64) ([]float64, error) {
	gSpl, err := numeric.NewSpline(rr, g)
	if err != nil {
		return nil, err
	}
	last := len(rr) - 1
	rmax := rr[last]
	inner := func(r float64) float64 { return dens(r) * gSpl.Eval(r) }
	outer := func(r float64) float64 { return dens(r) * g[last] * (rmax / r) * (rmax / r) }

	pressure := numeric.Integrate(inner, rr, 0)
	tail := numeric.QuadToInf(outer, rmax)
	for i := range pressure {
		pressure[i] = -(pressure[i] + tail)
	}
	return pressure, nil
}

// fromScratch is the shared backfill: Newtonian potential at construction
// time, gas mass by cumulative integration if a builder has not already set
// it, stellar fields, dark matter by subtraction with clipping, and the
// derived diagnostic fields.
func (m *Model) fromScratch(ctx context.Context, opts Options) error {
	fs := m.Fields
	rr := fs.Radius()
	n := m.N

	if !fs.Has("gravitational_potential") {
		newt, err := gravity.New("newtonian", gravity.DefaultConfig())
		if err != nil {
			return err
		}
		if err := gravity.Potential(ctx, fs, newt, false); err != nil {
			return err
		}
	}

	hasGas := fs.Has("density")
	if hasGas && !fs.Has("gas_mass") {
		density := fs.Get("density")
		dr2 := make([]float64, n)
		for i := range dr2 {
			dr2[i] = density[i] * rr[i] * rr[i]
		}
		mgas := numeric.CumTrapz(dr2, rr, 0)
		// Inner sphere at constant central density.
		m0 := density[0] * rr[0] * rr[0] * rr[0] / 3.0
		for i := range mgas {
			mgas[i] = 4 * math.Pi * (mgas[i] + m0)
		}
		if err := fs.Put("gas_mass", mgas, "Msun"); err != nil {
			return err
		}
	}

	if opts.Stellar != nil {
		if err := putAll(fs,
			field{"stellar_density", opts.Stellar.Sample(rr), "Msun/kpc**3"},
			field{"stellar_mass", numeric.IntegrateMass(opts.Stellar.Func(), rr), "Msun"},
		); err != nil {
			return err
		}
	}

	tden := fs.Get("total_density")
	tmass := fs.Get("total_mass")
	dmDensity := make([]float64, n)
	dmMass := make([]float64, n)
	copy(dmDensity, tden)
	copy(dmMass, tmass)
	subtract := func(dst, src []float64) {
		for i := range dst {
			dst[i] -= src[i]
		}
	}
	if hasGas {
		subtract(dmDensity, fs.Get("density"))
		subtract(dmMass, fs.Get("gas_mass"))
	}
	if opts.Stellar != nil {
		subtract(dmDensity, fs.Get("stellar_density"))
		subtract(dmMass, fs.Get("stellar_mass"))
	}
	clipped := 0
	for i := range dmDensity {
		if dmDensity[i] < 0 {
			dmDensity[i] = 0
			clipped++
		}
		if dmMass[i] < 0 {
			dmMass[i] = 0
		}
	}
	if clipped > 0 {
		log.Warnf("dark matter density clipped to zero at %d of %d radii", clipped, n)
	}
	if dmMass[n-1] <= 0 {
		return fmt.Errorf("dark matter mass is non-positive everywhere: %w", ErrNonPhysical)
	}
	if err := putAll(fs,
		field{"dark_matter_density", dmDensity, "Msun/kpc**3"},
		field{"dark_matter_mass", dmMass, "Msun"},
	); err != nil {
		return err
	}

	if hasGas {
		density := fs.Get("density")
		mgas := fs.Get("gas_mass")
		temperature := fs.Get("temperature")
		fgas := make([]float64, n)
		ne := make([]float64, n)
		entropy := make([]float64, n)
		for i := range rr {
			fgas[i] = mgas[i] / tmass[i]
			ne[i] = density[i] * units.RhoToNe
			entropy[i] = temperature[i] * math.Pow(ne[i], -2.0/3.0)
		}
		if err := putAll(fs,
			field{"gas_fraction", fgas, ""},
			field{"electron_number_density", ne, "cm**-3"},
			field{"entropy", entropy, "keV*cm**2"},
		); err != nil {
			return err
		}
	}
	return nil
}

// CheckModel recomputes dP/dr by spline differentiation and returns the
// fractional deviation from rho*g at every radius. A well converged model
// stays below ~1e-3 everywhere.
func (m *Model) CheckModel() ([]float64, error) {
	fs := m.Fields
	if !fs.Has("pressure", "density", "gravitational_field") {
		return nil, fmt.Errorf("equilibrium check requires {pressure, density, gravitational_field}")
	}
	rr := fs.Radius()
	pSpl, err := numeric.NewSpline(rr, fs.Get("pressure"))
	if err != nil {
		return nil, err
	}
	density := fs.Get("density")
	g := fs.Get("gravitational_field")
	chk := make([]float64, m.N)
	for i := range chk {
		rhog := density[i] * g[i]
		chk[i] = (pSpl.Deriv(rr[i]) - rhog) / rhog
	}
	return chk, nil
}

// SetMagneticFieldFromBeta sets the magnetic field strength from a constant
// plasma beta, B = sqrt(8*pi*P/beta) in Gaussian units (sqrt(2*P/beta) in
// Lorentz-Heaviside units).
func (m *Model) SetMagneticFieldFromBeta(beta float64, gaussian bool) error {
	if !m.Fields.Has("pressure") {
		return fmt.Errorf("magnetic field from beta requires a pressure field")
	}
	pressure := m.Fields.Get("pressure")
	b := make([]float64, m.N)
	for i := range b {
		b[i] = math.Sqrt(2 * pressure[i] * units.PressureToCGS / beta)
		if gaussian {
			b[i] *= math.Sqrt(4 * math.Pi)
		}
	}
	return m.Fields.Put("magnetic_field", b, "G")
}

// SetMagneticFieldFromDensity sets the magnetic field strength scaling with
// the gas density, B = B0*(rho/rho_0)^eta with rho_0 the central density.
func (m *Model) SetMagneticFieldFromDensity(b0, eta float64) error {
	if !m.Fields.Has("density") {
		return fmt.Errorf("magnetic field from density requires a density field")
	}
	density := m.Fields.Get("density")
	b := make([]float64, m.N)
	for i := range b {
		b[i] = b0 * math.Pow(density[i]/density[0], eta)
	}
	return m.Fields.Put("magnetic_field", b, "G")
}

type field struct {
	name  string
	data  []float64
	units string
}

func putAll(fs *fields.Set, fields ...field) error {
	for _, f := range fields {
		if err := fs.Put(f.name, f.data, f.units); err != nil {
			return err
		}
	}
	return nil
}
