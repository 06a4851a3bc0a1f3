package model

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"golang.org/x/exp/rand"

	"github.com/astrobits/clustergen/internal/numeric"
	"github.com/astrobits/clustergen/internal/profiles"
)

const (
	testRmin = 1.0
	testRmax = 5000.0
	testN    = 500
)

func testDensity() profiles.Profile  { return profiles.BetaModel(3e5, 100, 0.667) }
func testTotalDen() profiles.Profile { return profiles.NFWDensity(5e6, 400) }

func buildDensTemp(t *testing.T) *Model {
	t.Helper()
	m, err := FromDensAndTemp(context.Background(), testRmin, testRmax, testN,
		testDensity(), profiles.Constant(6), Options{})
	if err != nil {
		t.Fatalf("FromDensAndTemp: %v", err)
	}
	return m
}

func TestFromDensAndTemp(t *testing.T) {
	g := NewWithT(t)
	m := buildDensTemp(t)

	for _, name := range []string{
		"radius", "density", "temperature", "pressure", "gravitational_field",
		"gas_mass", "total_mass", "total_density", "gravitational_potential",
		"dark_matter_mass", "dark_matter_density", "gas_fraction",
		"electron_number_density", "entropy",
	} {
		g.Expect(m.Fields.Has(name)).To(BeTrue(), "missing field %s", name)
	}

	tmass := m.Fields.Get("total_mass")
	dmass := m.Fields.Get("dark_matter_mass")
	fgas := m.Fields.Get("gas_fraction")
	g.Expect(dmass[testN-1]).To(BeNumerically(">", 0))
	g.Expect(fgas[testN-1]).To(BeNumerically("<", 1))
	g.Expect(fgas[testN-1]).To(BeNumerically(">", 0))
	for i := 1; i < testN; i++ {
		g.Expect(tmass[i]).To(BeNumerically(">=", tmass[i-1]), "total mass not monotone at %d", i)
	}

	chk, err := m.CheckModel()
	g.Expect(err).NotTo(HaveOccurred())
	maxDev := 0.0
	for _, c := range chk {
		maxDev = math.Max(maxDev, math.Abs(c))
	}
	// The field came from the same pressure spline the check differentiates,
	// so the residual is at round-off level.
	g.Expect(maxDev).To(BeNumerically("<", 1e-6))
}

func TestFromDensAndTden(t *testing.T) {
	g := NewWithT(t)
	m, err := FromDensAndTden(context.Background(), testRmin, testRmax, testN,
		testDensity(), testTotalDen(), Options{})
	g.Expect(err).NotTo(HaveOccurred())

	temp := m.Fields.Get("temperature")
	press := m.Fields.Get("pressure")
	for i := range temp {
		g.Expect(temp[i]).To(BeNumerically(">", 0), "temperature at %d", i)
		g.Expect(press[i]).To(BeNumerically(">", 0), "pressure at %d", i)
	}

	chk, err := m.CheckModel()
	g.Expect(err).NotTo(HaveOccurred())
	maxDev := 0.0
	for _, c := range chk {
		maxDev = math.Max(maxDev, math.Abs(c))
	}
	g.Expect(maxDev).To(BeNumerically("<", 1e-2))
}

func TestFromDensAndTden_NonPhysical(t *testing.T) {
	g := NewWithT(t)
	// A total density far below the gas density leaves no room for dark
	// matter anywhere.
	_, err := FromDensAndTden(context.Background(), testRmin, testRmax, testN,
		testDensity(), profiles.Constant(1), Options{})
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, ErrNonPhysical)).To(BeTrue())
}

func TestFromEntrAndTden(t *testing.T) {
	g := NewWithT(t)
	m, err := FromEntrAndTden(context.Background(), testRmin, testRmax, testN,
		profiles.BaselineEntropy(10, 1800, 2000, 1.1), testTotalDen(),
		Options{Fgas: 0.12, RFgas: 2000})
	g.Expect(err).NotTo(HaveOccurred())

	for _, name := range []string{"density", "pressure", "temperature", "entropy"} {
		data := m.Fields.Get(name)
		for i := range data {
			g.Expect(data[i]).To(BeNumerically(">", 0), "%s at %d", name, i)
		}
	}

	rr := m.Fields.Radius()
	fgas := numeric.Interp(2000, rr, m.Fields.Get("gas_fraction"))
	g.Expect(fgas).To(BeNumerically("~", 0.12, 0.012))
}

func TestNoGas(t *testing.T) {
	g := NewWithT(t)
	m, err := NoGas(context.Background(), testRmin, testRmax, testN,
		profiles.SNFWDensity(1e15, 500), Options{})
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(m.Fields.Has("density")).To(BeFalse())
	g.Expect(m.Fields.Has("gravitational_potential")).To(BeTrue())
	tmass := m.Fields.Get("total_mass")
	dmass := m.Fields.Get("dark_matter_mass")
	for i := range tmass {
		g.Expect(dmass[i]).To(Equal(tmass[i]), "dark matter mass at %d", i)
	}
}

func TestGenerateParticles(t *testing.T) {
	g := NewWithT(t)
	m := buildDensTemp(t)

	rng := rand.New(rand.NewSource(42))
	p, err := m.GenerateParticles(2000, 0, 1, rng)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.N).To(Equal(2000))
	g.Expect(p.Positions).To(HaveLen(2000))

	for i := 0; i < p.N; i++ {
		g.Expect(p.Masses[i]).To(Equal(p.Masses[0]), "mass at %d", i)
		g.Expect(p.Velocities[i]).To(Equal([3]float64{}), "velocity at %d", i)
		g.Expect(p.Energies[i]).To(BeNumerically(">", 0), "energy at %d", i)
		pos := p.Positions[i]
		r := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
		g.Expect(r).To(BeNumerically("<=", testRmax*1.0001), "radius at %d", i)
	}
}

func TestGenerateParticles_SubSample(t *testing.T) {
	g := NewWithT(t)
	m := buildDensTemp(t)

	rng := rand.New(rand.NewSource(7))
	p, err := m.GenerateParticles(1000, 0, 10, rng)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.N).To(Equal(1000))

	// Only n/subSample distinct radii are drawn and then tiled.
	seen := make(map[float64]struct{})
	for _, pos := range p.Positions {
		r := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
		seen[math.Round(r*1e9)/1e9] = struct{}{}
	}
	g.Expect(len(seen)).To(BeNumerically("<=", 100))
}

func TestSetMagneticFieldFromBeta(t *testing.T) {
	g := NewWithT(t)
	m := buildDensTemp(t)

	g.Expect(m.SetMagneticFieldFromBeta(100, true)).To(Succeed())
	b := m.Fields.Get("magnetic_field")
	g.Expect(m.Fields.Units("magnetic_field")).To(Equal("G"))
	// Central cluster fields sit in the microgauss range.
	g.Expect(b[0]).To(BeNumerically(">", 1e-7))
	g.Expect(b[0]).To(BeNumerically("<", 1e-4))
	for i := 1; i < len(b); i++ {
		g.Expect(b[i]).To(BeNumerically("<=", b[i-1]), "field not decreasing at %d", i)
	}
}

func TestSetMagneticFieldFromDensity(t *testing.T) {
	g := NewWithT(t)
	m := buildDensTemp(t)

	g.Expect(m.SetMagneticFieldFromDensity(5e-6, 0.5)).To(Succeed())
	b := m.Fields.Get("magnetic_field")
	g.Expect(b[0]).To(BeNumerically("~", 5e-6, 1e-12))
	for i := 1; i < len(b); i++ {
		g.Expect(b[i]).To(BeNumerically("<=", b[i-1]), "field not decreasing at %d", i)
	}
}
