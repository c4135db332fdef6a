// Package annotate labels registered profiles from overlapping features.
package annotate

import (
	"github.com/biogo/store/interval"

	"profclust/internal/profile"
)

// Thresholds are the minimum overlap fractions, each measured against the
// inclusive length of one side of the pair.
type Thresholds struct {
	FeatureOverProfile float64 // overlap / feature length
	ProfileOverFeature float64 // overlap / profile length
}

// entry adapts a profile to interval.IntInterface. Ranges are half-open,
// so the inclusive [Start,End] becomes [Start,End+1).
type entry struct {
	p  *profile.Profile
	id uintptr
}

func (e entry) ID() uintptr { return e.id }

func (e entry) Range() interval.IntRange {
	return interval.IntRange{Start: e.p.Start, End: e.p.End + 1}
}

func (e entry) Overlap(r interval.IntRange) bool {
	return e.p.Start < r.End && r.Start < e.p.End+1
}

// query is a feature interval, half-open like the stored ranges.
type query interval.IntRange

func (q query) Overlap(r interval.IntRange) bool { return q.Start < r.End && r.Start < q.End }

type treeKey struct {
	chrom  string
	strand profile.Strand
}

type tree struct {
	t     interval.IntTree
	dirty bool // inserted with fast=true, ranges not yet adjusted
}

// Index holds non-owning references to profiles in one interval tree per
// chromosome and strand.
type Index struct {
	trees map[treeKey]*tree
	n     int
}

func New() *Index { return &Index{trees: map[treeKey]*tree{}} }

// Len is the number of registered profiles.
func (ix *Index) Len() int { return ix.n }

// Register adds p to the index. p must outlive the index and End >= Start.
func (ix *Index) Register(p *profile.Profile) {
	k := treeKey{p.Chrom, p.Strand}
	tr := ix.trees[k]
	if tr == nil {
		tr = &tree{}
		ix.trees[k] = tr
	}
	if err := tr.t.Insert(entry{p: p, id: uintptr(ix.n)}, true); err != nil {
		// Only an inverted range fails, which decoding already rejects.
		return
	}
	tr.dirty = true
	ix.n++
}

// Annotate labels every registered profile on chrom/strand whose overlap
// with [start,end] satisfies both thresholds. It returns how many profiles
// took the label.
func (ix *Index) Annotate(th Thresholds, chrom string, start, end int, strand profile.Strand, name string) int {
	tr := ix.trees[treeKey{chrom, strand}]
	if tr == nil || end < start {
		return 0
	}
	if tr.dirty {
		tr.t.AdjustRanges()
		tr.dirty = false
	}
	featLen := float64(end - start + 1)

	n := 0
	for _, hit := range tr.t.Get(query{Start: start, End: end + 1}) {
		p := hit.(entry).p
		ov := overlap(start, end, p.Start, p.End)
		if ov <= 0 {
			continue
		}
		fracFeat := float64(ov) / featLen
		fracProf := float64(ov) / float64(p.Len())
		if fracFeat < th.FeatureOverProfile || fracProf < th.ProfileOverFeature {
			continue
		}
		if p.Annotated() && fracProf <= p.Score {
			continue
		}
		p.Annotation = name
		p.Score = fracProf
		p.Category = profile.Known
		n++
	}
	return n
}

func overlap(s1, e1, s2, e2 int) int {
	s, e := s1, e1
	if s2 > s {
		s = s2
	}
	if e2 < e {
		e = e2
	}
	return e - s + 1
}
