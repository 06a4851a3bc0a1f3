package profiles

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// nfwFactor is the inverse NFW mass normalization 1/(ln(1+c) - c/(1+c)).
func nfwFactor(conc float64) float64 {
	return 1.0 / (math.Log(conc+1.0) - conc/(1.0+conc))
}

// HernquistMass is the enclosed-mass profile of the Hernquist law.
func HernquistMass(m0, a float64) Profile {
	return Named("hernquist_mass", func(r float64) float64 {
		return m0 * r * r / ((r + a) * (r + a))
	})
}

// NFWMass is the enclosed-mass profile of the NFW law.
func NFWMass(rhoS, rs float64) Profile {
	norm := 4.0 * math.Pi * rhoS * rs * rs * rs
	return Named("nfw_mass", func(r float64) float64 {
		x := r / rs
		return norm * (math.Log(1.0+x) - x/(1.0+x))
	})
}

// TNFWMass is the enclosed-mass profile of the truncated NFW law.
//
// The integrand x/((1+x)^2 (1+(x/a)^2)) splits by partial fractions into
// A/(1+x) + B/(1+x)^2 + (-Ax + A-B)/(x^2+a^2) with
// A = a^2(a^2-1)/(1+a^2)^2 and B = -a^2/(1+a^2), giving the closed form
// below. In the limit a -> inf it reduces to the NFW mass, which the tests
// check numerically.
func TNFWMass(rhoS, rs, rt float64) Profile {
	a := rt / rs
	a2 := a * a
	A := a2 * (a2 - 1.0) / ((1.0 + a2) * (1.0 + a2))
	B := -a2 / (1.0 + a2)
	norm := 4.0 * math.Pi * rhoS * rs * rs * rs
	return Named("tnfw_mass", func(r float64) float64 {
		y := r / rs
		v := A*math.Log(1.0+y) +
			B*y/(1.0+y) -
			0.5*A*math.Log(1.0+y*y/a2) +
			(A-B)/a*math.Atan(y/a)
		return norm * v
	})
}

// SNFWMass is the enclosed-mass profile of the super-NFW law.
func SNFWMass(m, a float64) Profile {
	return Named("snfw_mass", func(r float64) float64 {
		x := r / a
		return m * (1.0 - (2.0+3.0*x)/(2.0*math.Pow(1.0+x, 1.5)))
	})
}

// SNFWTotalMass finds the total-mass parameter of the super-NFW model from a
// reference mass and radius (say M200c and R200c) and the scale radius.
func SNFWTotalMass(mass, radius, a float64) float64 {
	return mass / SNFWMass(1.0, a).Eval(radius)
}

// SNFWConc converts an NFW concentration to the corresponding sNFW
// concentration (Lilley, Wyn Evans & Sanders 2018, eq. 31).
func SNFWConc(concNFW float64) float64 {
	return 0.76*concNFW + 1.36
}

// CoredSNFWMass is the enclosed-mass profile of the cored super-NFW law.
//
// The textbook closed form uses sqrt(b/(1-b)), which is imaginary for b > 1;
// there the two arctan terms become artanh terms whose imaginary parts
// cancel, leaving the real log branch below. Both branches are real and
// finite for every physical b != 1, x > 0. b = 1 (scale radius equal to core
// radius) is a removable parameter degeneracy the caller must avoid.
func CoredSNFWMass(m, a, rc float64) Profile {
	b := a / rc
	return Named("cored_snfw_mass", func(r float64) float64 {
		x := r / a
		y := math.Sqrt(x + 1.0)
		ret := (1.0 - 1.0/y) * (b - 2.0) / ((b - 1.0) * (b - 1.0))
		ret += (1.0/(y*y*y) - 1.0) / (3.0 * (b - 1.0))
		ec := b * (b - 1.0) * (b - 1.0)
		if b < 1.0 {
			d := math.Sqrt(b / (1.0 - b))
			ret += d * (math.Atan(y*d) - math.Atan(d)) / ec
		} else {
			e := math.Sqrt(b / (b - 1.0))
			ret += e / (2.0 * ec) * math.Log((e+1.0)*(y*e-1.0)/((e-1.0)*(y*e+1.0)))
		}
		return 1.5 * m * b * ret
	})
}

// CoredSNFWTotalMass finds the total-mass parameter of the cored super-NFW
// model from a reference mass and radius and the scale and core radii.
func CoredSNFWTotalMass(mass, radius, a, rc float64) float64 {
	return mass / CoredSNFWMass(1.0, a, rc).Eval(radius)
}

// EinastoMass is the enclosed-mass profile of the Einasto law.
func EinastoMass(m, rs, n float64) Profile {
	alpha := 1.0 / n
	h := rs / math.Pow(dn(n), n)
	return Named("einasto_mass", func(r float64) float64 {
		s := r / h
		return m * mathext.GammaIncReg(3.0*n, math.Pow(s, alpha))
	})
}

// ConvertNFWToHernquist maps (M200, r200, c) of an NFW halo onto the
// Hernquist total mass and scale radius with the same inner behavior.
func ConvertNFWToHernquist(m200, r200, conc float64) (m0, a float64) {
	a = r200 / (math.Sqrt(0.5*conc*conc*nfwFactor(conc)) - 1.0)
	m0 = m200 * (r200 + a) * (r200 + a) / (r200 * r200)
	return m0, a
}
