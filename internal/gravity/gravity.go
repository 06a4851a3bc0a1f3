// Package gravity implements the gravitational force laws used to relate
// mass distributions, fields, and potentials on a radial grid: Newtonian
// gravity and the AQUAL, QUMOND, and EMOND formulations of MOND.
//
// Each law exposes an ordered registry of potential-computation methods keyed
// by the fields they require; the first method whose inputs are all present
// is used. Degraded implicit solves never fail the computation: they log a
// warning and fall back to the analytic guess.
package gravity

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/astrobits/clustergen/internal/fields"
	"github.com/astrobits/clustergen/internal/units"
)

var log = logrus.WithField("component", "gravity")

// InterpFunc is a MOND interpolation function: mu(x) for AQUAL-family laws,
// nu(y) for QUMOND.
type InterpFunc func(x float64) float64

// SimpleMu is the "simple" mu(x) = x/(1+x). The AQUAL guess solution is
// exact for this choice.
func SimpleMu(x float64) float64 { return x / (1.0 + x) }

// StandardMu is mu(x) = x/sqrt(1+x^2).
func StandardMu(x float64) float64 { return x / math.Sqrt(1.0+x*x) }

// SimpleNu is the QUMOND nu(y) conjugate to SimpleMu.
func SimpleNu(y float64) float64 { return 0.5 + math.Sqrt(0.25+1.0/y) }

// Config carries every tunable a gravity law reads. It replaces ambient
// global state: construct one, adjust, and pass it to New.
type Config struct {
	// A0 is the MOND acceleration scale in kpc/Myr^2.
	A0 float64
	// Interp is the MOND interpolation function (mu for AQUAL/EMOND, nu
	// for QUMOND). Nil selects the simple family (SimpleMu or SimpleNu).
	Interp InterpFunc
	// A0Of, when non-nil, makes the acceleration scale a function of the
	// local potential (EMOND). When nil every law sees the constant A0.
	A0Of func(phi float64) float64
	// Alpha is the EMOND transition exponent.
	Alpha float64
	// CheckTol is the residual below which the analytic guess for the
	// implicit MOND equation is accepted without refinement.
	CheckTol float64
	// MaxCalls bounds the number of residual evaluations in a refinement
	// solve.
	MaxCalls int
	// MaxRuntime bounds the wall-clock time of a refinement solve; on
	// expiry the guess solution is used.
	MaxRuntime time.Duration
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		A0:         units.A0,
		Alpha:      1.0,
		CheckTol:   1e-5,
		MaxCalls:   400,
		MaxRuntime: 30 * time.Second,
	}
}

func (c Config) a0At(phi float64) float64 {
	if c.A0Of != nil {
		return c.A0Of(phi)
	}
	return c.A0
}

func (c Config) interp() InterpFunc {
	if c.Interp != nil {
		return c.Interp
	}
	return SimpleMu
}

func (c Config) interpNu() InterpFunc {
	if c.Interp != nil {
		return c.Interp
	}
	return SimpleNu
}

// Method is one way of computing a potential, valid when every field it
// requires is present.
type Method struct {
	Name     string
	Requires []string
	Compute  func(ctx context.Context, fs *fields.Set) ([]float64, error)
}

// Law is a gravity theory: it can compute a potential from whichever field
// combination is available, and the dynamical mass implied by a field.
type Law interface {
	Name() string
	Methods() []Method
	ComputePotential(ctx context.Context, fs *fields.Set) ([]float64, error)
	ComputeMass(fs *fields.Set) ([]float64, error)
}

// MissingFieldsError reports that no registered potential method had its
// required fields present.
type MissingFieldsError struct {
	Law     string
	Methods []Method
}

func (e *MissingFieldsError) Error() string {
	var reqs []string
	for _, m := range e.Methods {
		reqs = append(reqs, fmt.Sprintf("%s requires {%s}", m.Name, strings.Join(m.Requires, ", ")))
	}
	return fmt.Sprintf("no valid potential method for %s gravity: %s", e.Law, strings.Join(reqs, "; "))
}

// dispatch picks the first method whose required fields are present.
func dispatch(ctx context.Context, fs *fields.Set, lawName string, methods []Method) ([]float64, error) {
	for _, m := range methods {
		if fs.Has(m.Requires...) {
			log.Infof("computing %s potential with method %s", lawName, m.Name)
			return m.Compute(ctx, fs)
		}
	}
	return nil, &MissingFieldsError{Law: lawName, Methods: methods}
}

// Potential computes the gravitational potential for the field set and
// stores it under "gravitational_potential". If the field already exists the
// call is a no-op unless force is set.
func Potential(ctx context.Context, fs *fields.Set, law Law, force bool) error {
	if fs.Has("gravitational_potential") && !force {
		log.Warn("there is already a calculated potential for this model; use force to recompute")
		return nil
	}
	pot, err := law.ComputePotential(ctx, fs)
	if err != nil {
		return err
	}
	return fs.Put("gravitational_potential", pot, "kpc**2/Myr**2")
}

// New returns the named gravity law bound to cfg. Known names: "newtonian",
// "aqual", "qumond", "emond".
func New(name string, cfg Config) (Law, error) {
	switch strings.ToLower(name) {
	case "newtonian":
		return &Newtonian{cfg: cfg}, nil
	case "aqual":
		return &AQUAL{cfg: cfg}, nil
	case "qumond":
		return &QUMOND{cfg: cfg}, nil
	case "emond":
		return &EMOND{cfg: cfg}, nil
	}
	return nil, fmt.Errorf("unknown gravity law %q", name)
}
