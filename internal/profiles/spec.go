package profiles

import (
	"fmt"
	"sort"
)

// Spec is the declarative, serializable form of a built-in profile: a law
// name plus its positional parameters, in the order the corresponding
// constructor takes them. Specs with identical parameters build bit-identical
// profiles.
type Spec struct {
	Name   string    `yaml:"name" json:"name"`
	Params []float64 `yaml:"params" json:"params"`
}

type builder struct {
	arity int
	build func(p []float64) Profile
}

var builtin = map[string]builder{
	"constant":  {1, func(p []float64) Profile { return Constant(p[0]) }},
	"power_law": {3, func(p []float64) Profile { return PowerLaw(p[0], p[1], p[2]) }},

	"beta_model":              {3, func(p []float64) Profile { return BetaModel(p[0], p[1], p[2]) }},
	"hernquist_density":       {2, func(p []float64) Profile { return HernquistDensity(p[0], p[1]) }},
	"cored_hernquist_density": {3, func(p []float64) Profile { return CoredHernquistDensity(p[0], p[1], p[2]) }},
	"nfw_density":             {2, func(p []float64) Profile { return NFWDensity(p[0], p[1]) }},
	"tnfw_density":            {3, func(p []float64) Profile { return TNFWDensity(p[0], p[1], p[2]) }},
	"snfw_density":            {2, func(p []float64) Profile { return SNFWDensity(p[0], p[1]) }},
	"cored_snfw_density":      {3, func(p []float64) Profile { return CoredSNFWDensity(p[0], p[1], p[2]) }},
	"einasto_density":         {3, func(p []float64) Profile { return EinastoDensity(p[0], p[1], p[2]) }},
	"am06_density":            {5, func(p []float64) Profile { return AM06Density(p[0], p[1], p[2], p[3], p[4]) }},
	"vikhlinin_density":       {7, func(p []float64) Profile { return VikhlininDensity(p[0], p[1], p[2], p[3], p[4], p[5], p[6]) }},

	"hernquist_mass":  {2, func(p []float64) Profile { return HernquistMass(p[0], p[1]) }},
	"nfw_mass":        {2, func(p []float64) Profile { return NFWMass(p[0], p[1]) }},
	"tnfw_mass":       {3, func(p []float64) Profile { return TNFWMass(p[0], p[1], p[2]) }},
	"snfw_mass":       {2, func(p []float64) Profile { return SNFWMass(p[0], p[1]) }},
	"cored_snfw_mass": {3, func(p []float64) Profile { return CoredSNFWMass(p[0], p[1], p[2]) }},
	"einasto_mass":    {3, func(p []float64) Profile { return EinastoMass(p[0], p[1], p[2]) }},

	"vikhlinin_temperature": {8, func(p []float64) Profile {
		return VikhlininTemperature(p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7])
	}},
	"am06_temperature": {4, func(p []float64) Profile { return AM06Temperature(p[0], p[1], p[2], p[3]) }},
	"ad07_temperature": {4, func(p []float64) Profile { return AD07Temperature(p[0], p[1], p[2], p[3]) }},

	"baseline_entropy": {4, func(p []float64) Profile { return BaselineEntropy(p[0], p[1], p[2], p[3]) }},
	"broken_entropy":   {4, func(p []float64) Profile { return BrokenEntropy(p[0], p[1], p[2], p[3]) }},
	"walker_entropy":   {5, func(p []float64) Profile { return WalkerEntropy(p[0], p[1], p[2], p[3], p[4]) }},
}

// Build constructs the profile the spec names.
func (s Spec) Build() (Profile, error) {
	b, ok := builtin[s.Name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", s.Name)
	}
	if len(s.Params) != b.arity {
		return Profile{}, fmt.Errorf("profile %q takes %d parameters, got %d", s.Name, b.arity, len(s.Params))
	}
	return b.build(s.Params), nil
}

// Builtin lists the available law names, sorted.
func Builtin() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
