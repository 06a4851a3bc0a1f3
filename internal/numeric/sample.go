package numeric

import (
	"sort"

	"golang.org/x/exp/rand"
)

// GenerateParticleRadii draws n particle radii from the cumulative mass
// distribution (r, m) by inverse-CDF sampling, where m[i] is the mass
// enclosed within r[i]. A non-positive rMax samples the whole grid;
// otherwise sampling is renormalized to the mass within rMax. The returned
// total is the sampled mass, so each particle carries total/n.
func GenerateParticleRadii(r, m []float64, n int, rMax float64, rng *rand.Rand) ([]float64, float64) {
	ridx := len(r)
	if rMax > 0 {
		ridx = sort.SearchFloat64s(r, rMax)
		if ridx == 0 {
			ridx = 1
		}
	}
	total := m[ridx-1]

	// The origin point anchors the inversion so mass near r=0 is sampled
	// correctly.
	cdf := make([]float64, ridx+1)
	grid := make([]float64, ridx+1)
	for i := 0; i < ridx; i++ {
		cdf[i+1] = m[i] / total
		grid[i+1] = r[i]
	}

	radii := make([]float64, n)
	for i := range radii {
		radii[i] = Interp(rng.Float64(), cdf, grid)
	}
	return radii, total
}
