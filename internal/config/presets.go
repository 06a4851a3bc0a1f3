package config

import (
	"sort"

	"github.com/astrobits/clustergen/internal/profiles"
)

// Presets are ready-to-run cluster configurations keyed by build mode then
// preset name. Densities are in Msun/kpc^3, radii in kpc, temperatures in
// keV, entropies in keV*cm^2.
var Presets = map[string]map[string]*Config{
	"dens_temp": {
		"fiducial": {
			Mode: "dens_temp",
			Grid: GridConfig{Rmin: 1.0, Rmax: 5000.0, NumPoints: 1000},
			Profiles: ProfilesConfig{
				Density:     &profiles.Spec{Name: "beta_model", Params: []float64{3.0e5, 100.0, 0.667}},
				Temperature: &profiles.Spec{Name: "constant", Params: []float64{6.0}},
			},
			Gravity:   GravityConfig{Law: "newtonian", Interp: "simple"},
			Particles: ParticlesConfig{Num: 100000, SubSample: 1, Seed: 42},
		},
		"cool_core": {
			Mode: "dens_temp",
			Grid: GridConfig{Rmin: 1.0, Rmax: 3000.0, NumPoints: 1000},
			Profiles: ProfilesConfig{
				Density:     &profiles.Spec{Name: "vikhlinin_density", Params: []float64{4.6e5, 94.0, 1239.0, 0.89, 0.54, 3.88, 3.0}},
				Temperature: &profiles.Spec{Name: "am06_temperature", Params: []float64{8.0, 71.0, 76.0, 0.23}},
			},
			Gravity:   GravityConfig{Law: "newtonian", Interp: "simple"},
			Particles: ParticlesConfig{Num: 200000, SubSample: 2, Seed: 42},
		},
	},
	"dens_tden": {
		"nfw": {
			Mode: "dens_tden",
			Grid: GridConfig{Rmin: 1.0, Rmax: 5000.0, NumPoints: 1000},
			Profiles: ProfilesConfig{
				Density:      &profiles.Spec{Name: "beta_model", Params: []float64{3.0e5, 100.0, 0.667}},
				TotalDensity: &profiles.Spec{Name: "nfw_density", Params: []float64{5.0e6, 400.0}},
			},
			Gravity:   GravityConfig{Law: "newtonian", Interp: "simple"},
			Particles: ParticlesConfig{Num: 100000, SubSample: 1, Seed: 42},
		},
		"mond": {
			Mode: "dens_tden",
			Grid: GridConfig{Rmin: 1.0, Rmax: 5000.0, NumPoints: 1000},
			Profiles: ProfilesConfig{
				Density:      &profiles.Spec{Name: "beta_model", Params: []float64{3.0e5, 100.0, 0.667}},
				TotalDensity: &profiles.Spec{Name: "hernquist_density", Params: []float64{8.0e14, 1000.0}},
			},
			Gravity:   GravityConfig{Law: "aqual", Interp: "simple", CheckTol: 1e-5, MaxCalls: 400, MaxRuntimeSec: 30},
			Particles: ParticlesConfig{Num: 100000, SubSample: 1, Seed: 42},
		},
	},
	"entr_tden": {
		"baseline": {
			Mode: "entr_tden",
			Grid: GridConfig{Rmin: 1.0, Rmax: 5000.0, NumPoints: 1000},
			Profiles: ProfilesConfig{
				Entropy:      &profiles.Spec{Name: "baseline_entropy", Params: []float64{10.0, 1800.0, 2000.0, 1.1}},
				TotalDensity: &profiles.Spec{Name: "nfw_density", Params: []float64{5.0e6, 400.0}},
			},
			Gravity:   GravityConfig{Law: "newtonian", Interp: "simple"},
			GasFrac:   GasFracConfig{Fgas: 0.12, RFgas: 2000.0},
			Particles: ParticlesConfig{Num: 100000, SubSample: 1, Seed: 42},
		},
	},
	"no_gas": {
		"dm_only": {
			Mode: "no_gas",
			Grid: GridConfig{Rmin: 1.0, Rmax: 5000.0, NumPoints: 1000},
			Profiles: ProfilesConfig{
				TotalDensity: &profiles.Spec{Name: "snfw_density", Params: []float64{1.0e15, 500.0}},
			},
			Gravity: GravityConfig{Law: "newtonian", Interp: "simple"},
		},
	},
}

func GetPreset(mode, name string) *Config {
	group, ok := Presets[mode]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(mode string) []string {
	names := make([]string, 0)
	for name := range Presets[mode] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
