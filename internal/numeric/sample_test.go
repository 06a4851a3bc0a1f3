package numeric

import (
	"math"
	"sort"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

func TestGenerateParticleRadii_LinearMass(t *testing.T) {
	// m(r) = r means the radii themselves should be uniform on [0, 100].
	n := 10000
	rr := Linspace(1, 100, 100)
	m := make([]float64, len(rr))
	copy(m, rr)

	rng := rand.New(rand.NewSource(17))
	radii, total := GenerateParticleRadii(rr, m, n, 0, rng)

	if total != 100 {
		t.Fatalf("expected total mass 100, got %v", total)
	}
	if len(radii) != n {
		t.Fatalf("expected %d radii, got %d", n, len(radii))
	}

	// Kolmogorov-Smirnov distance against the uniform CDF.
	sorted := make([]float64, n)
	copy(sorted, radii)
	sort.Float64s(sorted)
	ks := 0.0
	for i, r := range sorted {
		cdf := r / 100.0
		emp := float64(i+1) / float64(n)
		if d := math.Abs(emp - cdf); d > ks {
			ks = d
		}
	}
	if bound := 2.0 / math.Sqrt(float64(n)); ks > bound {
		t.Errorf("KS distance %v exceeds bound %v", ks, bound)
	}

	if mean := stat.Mean(sorted, nil); math.Abs(mean-50) > 2 {
		t.Errorf("mean radius %v, want ~50", mean)
	}
	if med := stat.Quantile(0.5, stat.Empirical, sorted, nil); math.Abs(med-50) > 3 {
		t.Errorf("median radius %v, want ~50", med)
	}
}

func TestGenerateParticleRadii_RMax(t *testing.T) {
	rr := Linspace(1, 100, 100)
	m := make([]float64, len(rr))
	for i, r := range rr {
		m[i] = r * r
	}
	rng := rand.New(rand.NewSource(3))
	radii, total := GenerateParticleRadii(rr, m, 1000, 50, rng)

	for _, r := range radii {
		if r > 50 {
			t.Fatalf("radius %v exceeds rMax", r)
		}
	}
	if total > 50*50 {
		t.Errorf("total mass %v exceeds mass within rMax", total)
	}
}
