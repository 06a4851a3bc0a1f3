package profiles

import "math"

// VikhlininTemperature is the cluster temperature profile of Vikhlinin et
// al. (2006). Temperatures in keV, radii in kpc.
func VikhlininTemperature(t0, a, b, c, rt, tMin, rCool, aCool float64) Profile {
	return Named("vikhlinin_temperature", func(r float64) float64 {
		x := math.Pow(r/rCool, aCool)
		t := math.Pow(r/rt, -a) / math.Pow(1.0+math.Pow(r/rt, b), c/b)
		return t0 * t * (x + tMin/t0) / (x + 1.0)
	})
}

// AM06Temperature is the cool-core temperature profile of Ascasibar &
// Markevitch (2006), companion to AM06Density.
func AM06Temperature(t0, a, ac, c float64) Profile {
	return Named("am06_temperature", func(r float64) float64 {
		return t0 / (1.0 + r/a) * (c + r/ac) / (1.0 + r/ac)
	})
}

// AD07Temperature is the pseudo-polytropic temperature profile of Ascasibar
// & Diego (2008), companion to AD07Density.
func AD07Temperature(t0, t, a, alpha float64) Profile {
	return Named("ad07_temperature", func(r float64) float64 {
		return t0 / (1.0 + r/a) * (t + r/(alpha*a)) / (1.0 + r/(alpha*a))
	})
}

// BaselineEntropy is the baseline cluster entropy profile of Voit, Kay &
// Bryan (2005). Entropies in keV*cm^2.
func BaselineEntropy(k0, k200, r200, alpha float64) Profile {
	return Named("baseline_entropy", func(r float64) float64 {
		return k0 + k200*math.Pow(r/r200, alpha)
	})
}

// BrokenEntropy is a broken power-law entropy profile.
func BrokenEntropy(rs, kScale, alpha, k0 float64) Profile {
	return Named("broken_entropy", func(r float64) float64 {
		x := r / rs
		ret := math.Pow(x, alpha) * math.Pow(1.0+math.Pow(x, 5), 0.2*(1.1-alpha))
		return kScale * (k0 + ret)
	})
}

// WalkerEntropy is the entropy profile of Walker et al. with a Gaussian
// outer taper.
func WalkerEntropy(r200, a, b, kScale, alpha float64) Profile {
	return Named("walker_entropy", func(r float64) float64 {
		x := r / r200
		return kScale * (a * math.Pow(x, alpha)) * math.Exp(-(x/b)*(x/b))
	})
}
