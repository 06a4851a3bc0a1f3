package model

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/astrobits/clustergen/internal/numeric"
)

// Particles holds an equal-mass particle realization of a model's gas
// component. Positions sit on isotropically distributed sphere angles at
// radii drawn from the inverse CDF of the gas mass profile; velocities are
// zero since the gas is in hydrostatic equilibrium.
type Particles struct {
	N          int
	Positions  [][3]float64
	Velocities [][3]float64
	Masses     []float64
	Densities  []float64
	// Energies are specific thermal energies in kpc^2/Myr^2.
	Energies []float64
}

// GenerateParticles samples n gas particles out to rMax (rMax <= 0 means
// the outer grid edge). subSample > 1 draws only n/subSample distinct radii
// and tiles them, which is cheaper when n is large and the sampling noise
// at small radii does not matter.
func (m *Model) GenerateParticles(n int, rMax float64, subSample int, rng *rand.Rand) (*Particles, error) {
	fs := m.Fields
	if !fs.Has("density", "gas_mass", "pressure") {
		return nil, fmt.Errorf("particle generation requires {density, gas_mass, pressure}")
	}
	if subSample < 1 {
		subSample = 1
	}
	rr := fs.Radius()
	density := fs.Get("density")
	pressure := fs.Get("pressure")

	log.Infof("sampling %d gas particle radii (sub_sample=%d)", n, subSample)
	nDraw := (n + subSample - 1) / subSample
	drawn, mtot := numeric.GenerateParticleRadii(rr, fs.Get("gas_mass"), nDraw, rMax, rng)
	radii := drawn
	if subSample > 1 {
		radii = make([]float64, 0, n)
		for len(radii) < n {
			radii = append(radii, drawn...)
		}
		radii = radii[:n]
	}

	eSpec := make([]float64, m.N)
	for i := range eSpec {
		eSpec[i] = 1.5 * pressure[i] / density[i]
	}
	eSpl, err := numeric.NewSpline(rr, eSpec)
	if err != nil {
		return nil, err
	}
	dSpl, err := numeric.NewSpline(rr, density)
	if err != nil {
		return nil, err
	}

	p := &Particles{
		N:          n,
		Positions:  make([][3]float64, n),
		Velocities: make([][3]float64, n),
		Masses:     make([]float64, n),
		Densities:  make([]float64, n),
		Energies:   make([]float64, n),
	}
	mEach := mtot / float64(n)
	for i, r := range radii {
		theta := math.Acos(1 - 2*rng.Float64())
		phi := 2 * math.Pi * rng.Float64()
		sinT, cosT := math.Sincos(theta)
		sinP, cosP := math.Sincos(phi)
		p.Positions[i] = [3]float64{r * sinT * cosP, r * sinT * sinP, r * cosT}
		p.Masses[i] = mEach
		p.Densities[i] = dSpl.Eval(r)
		p.Energies[i] = eSpl.Eval(r)
	}
	return p, nil
}
