// Package units holds the physical constants used throughout clustergen.
//
// All radial quantities live in "galactic" units: lengths in kpc, times in
// Myr, masses in Msun. Temperatures are carried in keV and converted at the
// pressure boundary.
package units

import "math"

const (
	// G is Newton's constant in kpc^3/(Msun*Myr^2).
	G = 4.49851e-12

	// Mp is the proton mass in Msun.
	Mp = 8.41188e-58

	// KBoltz is the Boltzmann constant in Msun*kpc^2/(Myr^2*K).
	KBoltz = 7.26158e-66

	// KeV is one keV in Msun*kpc^2/Myr^2.
	KeV = 8.42803e-59

	// A0 is the MOND acceleration scale (1.2e-10 m/s^2) in kpc/Myr^2.
	A0 = 3.87289e-3

	// XH is the primordial hydrogen mass fraction.
	XH = 0.76

	// KpcToCm is one kpc in centimeters.
	KpcToCm = 3.0856775814913673e21

	// MsunToG is one solar mass in grams.
	MsunToG = 1.98847e33

	// MyrToS is one megayear in seconds.
	MyrToS = 3.1556952e13
)

// PressureToCGS converts a pressure in Msun/(kpc*Myr^2) to erg/cm^3.
var PressureToCGS = MsunToG / (KpcToCm * MyrToS * MyrToS)

// Mean molecular weights for a fully ionized H/He plasma.
var (
	Mu  = 1.0 / (2.0*XH + 0.75*(1.0-XH))
	Mue = 1.0 / (XH + 0.5*(1.0-XH))
)

// RhoToNe converts a gas density in Msun/kpc^3 to an electron number density
// in cm^-3.
var RhoToNe = MsunToG / (KpcToCm * KpcToCm * KpcToCm) / (Mue * 1.67262192369e-24)

// KeVCm2 is one keV*cm^2 (entropy) in Msun*kpc^4/Myr^2.
var KeVCm2 = KeV / (KpcToCm * KpcToCm)

// CriticalDensityFunc returns the critical density of the universe at
// redshift z in Msun/kpc^3. The cosmology is an external collaborator; the
// helpers in profiles accept any implementation of this signature.
type CriticalDensityFunc func(z float64) float64

// Default cosmology parameters (flat LCDM).
const (
	HubbleConstant = 0.71
	OmegaMatter    = 0.27
	OmegaLambda    = 0.73
)

// rhoCrit0 per h^2 in Msun/kpc^3: 2.77537e11 Msun/(Mpc^3) -> /1e9 kpc^3.
const rhoCritPerH2 = 2.77537e11 / 1e9

// CriticalDensity is the default CriticalDensityFunc for the flat-LCDM
// cosmology above.
func CriticalDensity(z float64) float64 {
	ez2 := OmegaMatter*math.Pow(1.0+z, 3) + OmegaLambda
	return rhoCritPerH2 * HubbleConstant * HubbleConstant * ez2
}
