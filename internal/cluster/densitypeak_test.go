package cluster

import (
	"math"
	"testing"

	"profclust/internal/distance"
	"profclust/internal/profile"
)

func fill(n int, far float64, near map[[2]int]float64) *distance.Matrix {
	m := distance.NewMatrix(n)
	m.ZeroDiagonal()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.Set(i, j, far)
		}
	}
	for ij, v := range near {
		m.Set(ij[0], ij[1], v)
	}
	return m
}

func fresh(n int) []profile.Profile {
	ps := make([]profile.Profile, n)
	for i := range ps {
		ps[i].Cluster, ps[i].Position = -1, -1
	}
	return ps
}

func TestTwoSeparatedGroups(t *testing.T) {
	near := map[[2]int]float64{
		{0, 1}: 0.05, {0, 2}: 0.05, {1, 2}: 0.05,
		{3, 4}: 0.05, {3, 5}: 0.05, {4, 5}: 0.05,
	}
	m := fill(6, 0.9, near)
	ps := fresh(6)
	k := DensityPeak{Percent: 0.02, HaloOn: true}.Cluster(m, ps)
	if k != 2 {
		t.Fatalf("clusters = %d, want 2", k)
	}
	for i := 1; i < 3; i++ {
		if ps[i].Cluster != ps[0].Cluster || ps[i+3].Cluster != ps[3].Cluster {
			t.Fatalf("bad grouping: %+v", ps)
		}
	}
	if ps[0].Cluster == ps[3].Cluster {
		t.Fatalf("groups merged")
	}
	if ps[0].Position != 0 || ps[3].Position != 0 {
		t.Fatalf("centers must have position 0: %+v", ps)
	}
	for i, p := range ps {
		if p.Cluster < 1 || p.Position < 0 {
			t.Fatalf("profile %d unassigned: %+v", i, p)
		}
	}
}

func TestHaloPolicy(t *testing.T) {
	near := map[[2]int]float64{
		{0, 1}: 0.03, {0, 2}: 0.03, {0, 3}: 0.03,
		{1, 2}: 0.05, {1, 3}: 0.05, {2, 3}: 0.05,
		{4, 5}: 0.03, {4, 6}: 0.03, {4, 7}: 0.03,
		{5, 6}: 0.05, {5, 7}: 0.05, {6, 7}: 0.05,
		{3, 7}: 0.045,
	}
	m := fill(8, 0.9, near)

	ps := fresh(8)
	if k := (DensityPeak{Percent: 0.25}).Cluster(m, ps); k != 2 {
		t.Fatalf("clusters = %d, want 2", k)
	}
	if ps[0].Cluster != 1 || ps[4].Cluster != 2 || ps[1].Cluster != 1 || ps[6].Cluster != 2 {
		t.Fatalf("bad assignment without halo: %+v", ps)
	}

	ps = fresh(8)
	DensityPeak{Percent: 0.25, HaloOn: true}.Cluster(m, ps)
	for _, i := range []int{0, 4} {
		if ps[i].Cluster == Halo {
			t.Fatalf("center %d moved to halo", i)
		}
	}
	for _, i := range []int{1, 2, 5, 6} {
		if ps[i].Cluster != Halo {
			t.Fatalf("border-density member %d not in halo: %+v", i, ps[i])
		}
	}
}

func TestTrivialSizes(t *testing.T) {
	if k := (DensityPeak{Percent: 0.02}).Cluster(distance.NewMatrix(0), nil); k != 0 {
		t.Fatalf("n=0 gave %d clusters", k)
	}
	m := distance.NewMatrix(1)
	m.ZeroDiagonal()
	ps := fresh(1)
	if k := (DensityPeak{Percent: 0.02}).Cluster(m, ps); k != 1 || ps[0].Cluster != 1 || ps[0].Position != 0 {
		t.Fatalf("n=1: k=%d %+v", k, ps[0])
	}
}

func TestCutoffFallsBackToPositive(t *testing.T) {
	m := fill(3, 0, map[[2]int]float64{{1, 2}: 0.4})
	if dc := Cutoff(m, 0.02); dc != 0.4 {
		t.Fatalf("dc = %v, want 0.4", dc)
	}
	if dc := Cutoff(fill(3, 0, nil), 0.5); dc != 1 {
		t.Fatalf("all-zero dc = %v, want 1", dc)
	}
}

func TestUnreachablePointJoinsTopCluster(t *testing.T) {
	inf := math.Inf(1)
	m := fill(3, inf, map[[2]int]float64{{1, 2}: 0.1})
	ps := fresh(3)
	k := DensityPeak{Percent: 0.02, HaloOn: false}.Cluster(m, ps)
	if k < 1 {
		t.Fatalf("k = %d", k)
	}
	for i, p := range ps {
		if p.Cluster < 1 || p.Cluster > k {
			t.Fatalf("profile %d got cluster %d without halo policy", i, p.Cluster)
		}
	}
}
