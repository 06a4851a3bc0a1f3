package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/astrobits/clustergen/internal/gravity"
	"github.com/astrobits/clustergen/internal/profiles"
)

const (
	DefaultRmin      = 1.0
	DefaultRmax      = 5000.0
	DefaultNumPoints = 1000
	DefaultParticles = 100000
	DefaultSubSample = 1
)

type Config struct {
	Mode      string          `yaml:"mode"`
	Grid      GridConfig      `yaml:"grid"`
	Profiles  ProfilesConfig  `yaml:"profiles"`
	Gravity   GravityConfig   `yaml:"gravity"`
	Particles ParticlesConfig `yaml:"particles"`
	GasFrac   GasFracConfig   `yaml:"gas_fraction"`
	Magnetic  MagneticConfig  `yaml:"magnetic"`
}

type GridConfig struct {
	Rmin      float64 `yaml:"rmin"`
	Rmax      float64 `yaml:"rmax"`
	NumPoints int     `yaml:"num_points"`
}

type ProfilesConfig struct {
	Density      *profiles.Spec `yaml:"density,omitempty"`
	Temperature  *profiles.Spec `yaml:"temperature,omitempty"`
	TotalDensity *profiles.Spec `yaml:"total_density,omitempty"`
	Entropy      *profiles.Spec `yaml:"entropy,omitempty"`
	Stellar      *profiles.Spec `yaml:"stellar,omitempty"`
}

type GravityConfig struct {
	Law           string  `yaml:"law"`
	A0            float64 `yaml:"a0"`
	Interp        string  `yaml:"interp"`
	Alpha         float64 `yaml:"alpha"`
	CheckTol      float64 `yaml:"check_tol"`
	MaxCalls      int     `yaml:"max_calls"`
	MaxRuntimeSec float64 `yaml:"max_runtime_sec"`
}

type ParticlesConfig struct {
	Num       int     `yaml:"num"`
	Rmax      float64 `yaml:"rmax"`
	SubSample int     `yaml:"sub_sample"`
	Seed      uint64  `yaml:"seed"`
}

type GasFracConfig struct {
	Fgas  float64 `yaml:"fgas"`
	RFgas float64 `yaml:"r_fgas"`
}

type MagneticConfig struct {
	Beta float64 `yaml:"beta"`
	B0   float64 `yaml:"b0"`
	Eta  float64 `yaml:"eta"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode: "dens_temp",
		Grid: GridConfig{
			Rmin:      DefaultRmin,
			Rmax:      DefaultRmax,
			NumPoints: DefaultNumPoints,
		},
		Gravity: GravityConfig{
			Law:    "newtonian",
			Interp: "simple",
		},
		Particles: ParticlesConfig{
			Num:       DefaultParticles,
			SubSample: DefaultSubSample,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GravityLaw builds the configured gravity law, filling unset numeric knobs
// from the package defaults.
func (c *Config) GravityLaw() (gravity.Law, error) {
	gc := gravity.DefaultConfig()
	if c.Gravity.A0 > 0 {
		gc.A0 = c.Gravity.A0
	}
	if c.Gravity.Alpha > 0 {
		gc.Alpha = c.Gravity.Alpha
	}
	if c.Gravity.CheckTol > 0 {
		gc.CheckTol = c.Gravity.CheckTol
	}
	if c.Gravity.MaxCalls > 0 {
		gc.MaxCalls = c.Gravity.MaxCalls
	}
	if c.Gravity.MaxRuntimeSec > 0 {
		gc.MaxRuntime = time.Duration(c.Gravity.MaxRuntimeSec * float64(time.Second))
	}
	law := c.Gravity.Law
	if law == "" {
		law = "newtonian"
	}
	// QUMOND takes the conjugate nu function where the other laws take mu.
	switch c.Gravity.Interp {
	case "", "simple":
		gc.Interp = gravity.SimpleMu
		if law == "qumond" {
			gc.Interp = gravity.SimpleNu
		}
	case "standard":
		if law == "qumond" {
			return nil, fmt.Errorf("no standard interpolation function for qumond")
		}
		gc.Interp = gravity.StandardMu
	default:
		return nil, fmt.Errorf("unknown interpolation function %q", c.Gravity.Interp)
	}
	return gravity.New(law, gc)
}

// Validate checks that the profiles required by the configured mode are
// present and build cleanly.
func (c *Config) Validate() error {
	need := map[string][]*profiles.Spec{
		"dens_temp": {c.Profiles.Density, c.Profiles.Temperature},
		"dens_tden": {c.Profiles.Density, c.Profiles.TotalDensity},
		"entr_tden": {c.Profiles.Entropy, c.Profiles.TotalDensity},
		"no_gas":    {c.Profiles.TotalDensity},
	}
	specs, ok := need[c.Mode]
	if !ok {
		return fmt.Errorf("unknown build mode %q", c.Mode)
	}
	for _, spec := range specs {
		if spec == nil {
			return fmt.Errorf("mode %q requires profiles that are not configured", c.Mode)
		}
		if _, err := spec.Build(); err != nil {
			return err
		}
	}
	if c.Grid.Rmin <= 0 || c.Grid.Rmax <= c.Grid.Rmin {
		return fmt.Errorf("grid must satisfy 0 < rmin < rmax, got [%g, %g]", c.Grid.Rmin, c.Grid.Rmax)
	}
	if c.Grid.NumPoints < 3 {
		return fmt.Errorf("grid needs at least 3 points, got %d", c.Grid.NumPoints)
	}
	return nil
}
