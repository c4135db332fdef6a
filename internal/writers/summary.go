package writers

import (
	"bufio"
	"fmt"
	"io"

	"profclust/internal/profile"
)

// ClusterStat summarizes one cluster of the final assignment.
type ClusterStat struct {
	ID    int
	Size  int
	Known int    // members with a non-unknown annotation
	Label string // annotation of the center-most annotated member
}

// Summarize tallies clusters 1..nclusters. Halo and unclustered profiles
// are not counted.
func Summarize(profiles []profile.Profile, nclusters int) []ClusterStat {
	out := make([]ClusterStat, nclusters)
	best := make([]int, nclusters)
	for c := range out {
		out[c] = ClusterStat{ID: c + 1, Label: profile.Unknown}
		best[c] = -1
	}
	for i := range profiles {
		p := &profiles[i]
		if p.Cluster < 1 || p.Cluster > nclusters {
			continue
		}
		s := &out[p.Cluster-1]
		s.Size++
		if !p.Annotated() {
			continue
		}
		s.Known++
		if b := best[p.Cluster-1]; b < 0 || p.Position < profiles[b].Position {
			best[p.Cluster-1] = i
			s.Label = p.Annotation
		}
	}
	return out
}

// WriteClusterSummary writes "id<TAB>size<TAB>known<TAB>label" per cluster.
func WriteClusterSummary(w io.Writer, profiles []profile.Profile, nclusters int) error {
	bw := bufio.NewWriter(w)
	for _, s := range Summarize(profiles, nclusters) {
		if _, err := fmt.Fprintf(bw, "%d\t%d\t%d\t%s\n", s.ID, s.Size, s.Known, s.Label); err != nil {
			return err
		}
	}
	return bw.Flush()
}
