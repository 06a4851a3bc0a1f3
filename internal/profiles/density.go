package profiles

import (
	"math"

	"github.com/astrobits/clustergen/internal/numeric"
	"github.com/astrobits/clustergen/internal/units"
)

// Constant returns a profile with the same value at every radius.
func Constant(c float64) Profile {
	return Named("constant", func(r float64) float64 { return c })
}

// PowerLaw returns A*(r/rs)^alpha. Usable as a density, temperature, mass,
// or entropy profile.
func PowerLaw(a, rs, alpha float64) Profile {
	return Named("power_law", func(r float64) float64 {
		return a * math.Pow(r/rs, alpha)
	})
}

// BetaModel is the classic beta-model gas density profile
// (Cavaliere & Fusco-Femiano 1976). rhoC in Msun/kpc^3, rc in kpc.
func BetaModel(rhoC, rc, beta float64) Profile {
	return Named("beta_model", func(r float64) float64 {
		x := r / rc
		return rhoC * math.Pow(1.0+x*x, -1.5*beta)
	})
}

// HernquistDensity is the Hernquist (1990) density profile with total mass
// m0 and scale radius a.
func HernquistDensity(m0, a float64) Profile {
	norm := m0 / (2.0 * math.Pi * a * a * a)
	return Named("hernquist_density", func(r float64) float64 {
		x := r / a
		return norm / (x * math.Pow(1.0+x, 3))
	})
}

// CoredHernquistDensity is the Hernquist profile with a core of radius b.
func CoredHernquistDensity(m0, a, b float64) Profile {
	norm := m0 * b / (2.0 * math.Pi * a * a * a)
	return Named("cored_hernquist_density", func(r float64) float64 {
		x := r / a
		return norm / ((1.0 + b*x) * math.Pow(1.0+x, 3))
	})
}

// NFWDensity is the Navarro-Frenk-White (1997) density profile with scale
// density rhoS in Msun/kpc^3 and scale radius rs in kpc.
func NFWDensity(rhoS, rs float64) Profile {
	return Named("nfw_density", func(r float64) float64 {
		x := r / rs
		return rhoS / (x * (1.0 + x) * (1.0 + x))
	})
}

// TNFWDensity is the truncated NFW profile (Baltz, Marshall & Oguri 2009)
// with truncation radius rt.
func TNFWDensity(rhoS, rs, rt float64) Profile {
	return Named("tnfw_density", func(r float64) float64 {
		x := r / rs
		t := r / rt
		return rhoS / (x * (1.0 + x) * (1.0 + x)) / (1.0 + t*t)
	})
}

// SNFWDensity is the "super-NFW" density profile (Lilley, Wyn Evans &
// Sanders 2018) with total mass m and scale radius a.
func SNFWDensity(m, a float64) Profile {
	norm := 3.0 * m / (16.0 * math.Pi * a * a * a)
	return Named("snfw_density", func(r float64) float64 {
		x := r / a
		return norm / (x * math.Pow(1.0+x, 2.5))
	})
}

// CoredSNFWDensity is the cored super-NFW density profile with core radius
// rc.
func CoredSNFWDensity(m, a, rc float64) Profile {
	b := a / rc
	norm := 3.0 * m * b / (16.0 * math.Pi * a * a * a)
	return Named("cored_snfw_density", func(r float64) float64 {
		x := r / a
		return norm / ((1.0 + b*x) * math.Pow(1.0+x, 2.5))
	})
}

// dn is the Einasto shape constant of Retana-Montenegro et al. (2012).
func dn(n float64) float64 {
	return 3.0*n - 1.0/3.0 + 8.0/(1215.0*n) + 184.0/(229635.0*n*n)
}

// EinastoDensity is the Einasto (1965) profile with total mass m, scale
// radius rs, and inverse power-law index n.
func EinastoDensity(m, rs, n float64) Profile {
	alpha := 1.0 / n
	h := rs / math.Pow(dn(n), n)
	rho0 := m / (4.0 * math.Pi * h * h * h * n * math.Gamma(3.0*n))
	return Named("einasto_density", func(r float64) float64 {
		s := r / h
		return rho0 * math.Exp(-math.Pow(s, alpha))
	})
}

// AM06Density is the cool-core cluster gas density profile of Ascasibar &
// Markevitch (2006), companion to AM06Temperature.
func AM06Density(rho0, a, ac, c, n float64) Profile {
	alpha := -1.0 - n*(c-1.0)/(c-a/ac)
	beta := 1.0 - n*(1.0-a/ac)/(c-a/ac)
	return Named("am06_density", func(r float64) float64 {
		return rho0 * (1.0 + r/ac) * math.Pow(1.0+r/ac/c, alpha) * math.Pow(1.0+r/a, beta)
	})
}

// AD07Density is the pseudo-polytropic gas density profile of Ascasibar &
// Diego (2008). t0 in keV, t the core cooling degree, a the scale length in
// kpc, alpha the cooling-radius ratio, f the gas fraction, n the polytropic
// index.
func AD07Density(t0, t, a, alpha, f float64, n int, mu, omegaB, omegaDM float64) Profile {
	if mu <= 0 {
		mu = units.Mu
	}
	nn := float64(n)
	m := a * (nn + 1.0) * t0 * units.KeV / (mu * units.Mp * units.G)
	rho0 := f * (omegaB / omegaDM) * m / (2.0 * math.Pi * a * a * a)
	return Named("ad07_density", func(r float64) float64 {
		x := r / a
		exp := 1.0 + ((alpha-t*alpha)*(1.0-t*alpha))*(nn+1.0)
		return rho0 * math.Pow((1.0+x)/(t*alpha+x), exp) * (alpha + x) / math.Pow(1.0+x, nn+1.0)
	})
}

// VikhlininDensity is the modified beta-model of Vikhlinin et al. (2006).
// A gamma of zero selects the conventional gamma = 3.
func VikhlininDensity(rho0, rc, rs, alpha, beta, epsilon, gamma float64) Profile {
	if gamma == 0 {
		gamma = 3.0
	}
	return Named("vikhlinin_density", func(r float64) float64 {
		xc := r / rc
		xs := r / rs
		return rho0 * math.Pow(xc, -0.5*alpha) *
			math.Pow(1.0+xc*xc, -1.5*beta+0.25*alpha) *
			math.Pow(1.0+math.Pow(xs, gamma), -0.5*epsilon/gamma)
	})
}

// RescaleByMass rescales a density profile so the mass enclosed within
// radius equals mass.
func RescaleByMass(p Profile, mass, radius float64) Profile {
	f := p.Func()
	enclosed := 4.0 * math.Pi * numeric.Quad(func(r float64) float64 { return f(r) * r * r }, 0, radius)
	return p.Scale(mass / enclosed)
}
