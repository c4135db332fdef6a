// Package propagate fills unknown annotations from annotated cluster-mates.
package propagate

import "profclust/internal/profile"

// Labels copies, for each cluster 1..nclusters that has at least one
// annotated member, that member's annotation, score and category onto every
// member still carrying profile.Unknown. The representative is the annotated
// member closest to the cluster center (lowest Position, then lowest index).
// Existing annotations are never overwritten. It returns the number of
// profiles filled.
func Labels(profiles []profile.Profile, nclusters int) int {
	if nclusters < 1 {
		return 0
	}
	rep := make([]int, nclusters+1)
	for c := range rep {
		rep[c] = -1
	}
	for i := range profiles {
		p := &profiles[i]
		if p.Cluster < 1 || p.Cluster > nclusters || !p.Annotated() {
			continue
		}
		if r := rep[p.Cluster]; r < 0 || p.Position < profiles[r].Position {
			rep[p.Cluster] = i
		}
	}

	filled := 0
	for i := range profiles {
		p := &profiles[i]
		if p.Cluster < 1 || p.Cluster > nclusters || p.Annotated() {
			continue
		}
		r := rep[p.Cluster]
		if r < 0 {
			continue
		}
		src := &profiles[r]
		p.Annotation = src.Annotation
		p.Score = src.Score
		p.Category = src.Category
		filled++
	}
	return filled
}
