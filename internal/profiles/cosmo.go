package profiles

import (
	"fmt"
	"math"

	"github.com/astrobits/clustergen/internal/units"
)

// Bisection bracket for overdensity radius searches, in kpc. Covers every
// halo of cluster scale; anything outside it is not a cluster.
const (
	overdensityRMin = 0.01
	overdensityRMax = 10000.0
)

// NFWScaleDensity computes the NFW scale density for a halo of the given
// concentration at redshift z and overdensity delta, using the supplied
// critical-density function (nil selects the default cosmology).
func NFWScaleDensity(conc, z, delta float64, critDens units.CriticalDensityFunc) float64 {
	if critDens == nil {
		critDens = units.CriticalDensity
	}
	rhoCrit := critDens(z)
	return delta * rhoCrit * conc * conc * conc * nfwFactor(conc) / 3.0
}

// FindOverdensityRadius returns the radius in kpc at which the enclosed mass
// m corresponds to the overdensity delta.
func FindOverdensityRadius(m, delta, z float64, critDens units.CriticalDensityFunc) float64 {
	if critDens == nil {
		critDens = units.CriticalDensity
	}
	rhoCrit := critDens(z)
	return math.Cbrt(3.0 * m / (4.0 * math.Pi * delta * rhoCrit))
}

// FindRadiusMass inverts a mass profile for the radius and mass at which the
// mean enclosed density equals delta times the critical density (e.g. r200,
// M200). The root is bracketed on [0.01, 10000] kpc; a profile with no root
// there is an error.
func FindRadiusMass(mr Profile, delta, z float64, critDens units.CriticalDensityFunc) (radius, mass float64, err error) {
	if critDens == nil {
		critDens = units.CriticalDensity
	}
	rhoCrit := critDens(z)
	f := func(r float64) float64 {
		return 3.0*mr.Eval(r)/(4.0*math.Pi*r*r*r) - delta*rhoCrit
	}
	r, err := bisect(f, overdensityRMin, overdensityRMax)
	if err != nil {
		return 0, 0, err
	}
	return r, mr.Eval(r), nil
}

// bisect finds a sign change of f on [a, b] to machine-level precision.
func bisect(f func(float64) float64, a, b float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}
	if fa*fb > 0 {
		return 0, fmt.Errorf("no sign change on bracket [%g, %g]", a, b)
	}
	for i := 0; i < 200; i++ {
		mid := 0.5 * (a + b)
		if mid == a || mid == b {
			return mid, nil
		}
		fm := f(mid)
		if fm == 0 {
			return mid, nil
		}
		if fa*fm < 0 {
			b, fb = mid, fm
		} else {
			a, fa = mid, fm
		}
	}
	return 0.5 * (a + b), nil
}
