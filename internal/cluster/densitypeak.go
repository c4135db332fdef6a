// Package cluster implements density-peak clustering (Rodriguez & Laio,
// Science 2014) over a precomputed distance matrix.
package cluster

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"profclust/internal/distance"
	"profclust/internal/profile"
)

// Halo is the cluster id given to halo members when the halo policy is on.
const Halo = 0

// DensityPeak clusters without a preset cluster count.
//
// Percent picks the cutoff distance dc as the Percent quantile of all
// pairwise distances. With HaloOn, members whose density is below their
// cluster's border density are moved to the Halo id.
type DensityPeak struct {
	Percent float64
	HaloOn  bool
}

// Cluster writes Cluster (1..k, or Halo) and Position (rank by decreasing
// density inside the cluster, 0 = center) on every profile and returns k.
func (dp DensityPeak) Cluster(m *distance.Matrix, profiles []profile.Profile) int {
	n := m.N()
	switch n {
	case 0:
		return 0
	case 1:
		profiles[0].Cluster, profiles[0].Position = 1, 0
		return 1
	}

	dc := Cutoff(m, dp.Percent)
	rho := Density(m, dc)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return rho[order[a]] > rho[order[b]] })

	// delta: distance to the nearest denser point; nneigh is that point.
	delta := make([]float64, n)
	nneigh := make([]int, n)
	top := order[0]
	nneigh[top] = -1
	for j := 0; j < n; j++ {
		if d := m.At(top, j); d > delta[top] {
			delta[top] = d
		}
	}
	for r := 1; r < n; r++ {
		i := order[r]
		delta[i], nneigh[i] = math.Inf(1), top
		for s := 0; s < r; s++ {
			j := order[s]
			if d := m.At(i, j); d < delta[i] {
				delta[i], nneigh[i] = d, j
			}
		}
	}

	centers := pickCenters(rho, delta, dc)
	centers[top] = true

	cl := make([]int, n)
	k := 0
	for _, i := range order {
		if centers[i] {
			k++
			cl[i] = k
		} else {
			cl[i] = cl[nneigh[i]]
		}
	}

	pos := make([]int, k+1)
	for _, i := range order {
		profiles[i].Cluster = cl[i]
		profiles[i].Position = pos[cl[i]]
		pos[cl[i]]++
	}

	if dp.HaloOn && k > 1 {
		border := make([]float64, k+1)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cl[i] == cl[j] || m.At(i, j) >= dc {
					continue
				}
				avg := (rho[i] + rho[j]) / 2
				if avg > border[cl[i]] {
					border[cl[i]] = avg
				}
				if avg > border[cl[j]] {
					border[cl[j]] = avg
				}
			}
		}
		for i := 0; i < n; i++ {
			if rho[i] < border[cl[i]] {
				profiles[i].Cluster = Halo
			}
		}
	}
	return k
}

// Cutoff returns the distance at quantile percent of the n(n-1)/2 pair
// distances, falling back to the smallest positive distance (or 1) when
// that quantile is zero.
func Cutoff(m *distance.Matrix, percent float64) float64 {
	n := m.N()
	d := make([]float64, 0, distance.Pairs(n))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d = append(d, m.At(i, j))
		}
	}
	if len(d) == 0 {
		return 1
	}
	sort.Float64s(d)
	pos := int(math.Round(percent * float64(len(d))))
	if pos >= len(d) {
		pos = len(d) - 1
	}
	if pos < 0 {
		pos = 0
	}
	if d[pos] > 0 {
		return d[pos]
	}
	for _, v := range d {
		if v > 0 {
			return v
		}
	}
	return 1
}

// Density is the Gaussian-kernel local density of every point.
func Density(m *distance.Matrix, dc float64) []float64 {
	n := m.N()
	rho := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			x := m.At(i, j) / dc
			w := math.Exp(-x * x)
			rho[i] += w
			rho[j] += w
		}
	}
	return rho
}

// pickCenters marks points that are both well separated from any denser
// point (delta above mean+1sd of delta and above dc) and not sparse
// outliers (density at least half the mean density).
func pickCenters(rho, delta []float64, dc float64) []bool {
	finite := make([]float64, 0, len(delta))
	for _, d := range delta {
		if !math.IsInf(d, 0) {
			finite = append(finite, d)
		}
	}
	dMean, _ := stats.Mean(finite)
	dSD, _ := stats.StandardDeviationPopulation(finite)
	rMean, _ := stats.Mean(rho)

	out := make([]bool, len(rho))
	for i := range rho {
		out[i] = delta[i] > dMean+dSD && delta[i] > dc && rho[i] >= rMean/2
	}
	return out
}
