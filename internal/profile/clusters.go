package profile

// FeatureClusters tallies the source-cluster ids carried by annotation
// features: the largest id seen and the number of features per id.
type FeatureClusters struct {
	Max    int
	Counts map[int]int
}

func NewFeatureClusters() *FeatureClusters {
	return &FeatureClusters{Max: -1, Counts: map[int]int{}}
}

func (fc *FeatureClusters) Add(f Feature) {
	if f.Cluster > fc.Max {
		fc.Max = f.Cluster
	}
	fc.Counts[f.Cluster]++
}

// PerCluster returns counts for ids 1..Max, index 0 holding cluster 1.
func (fc *FeatureClusters) PerCluster() []int {
	if fc.Max < 1 {
		return nil
	}
	out := make([]int, fc.Max)
	for id, n := range fc.Counts {
		if id >= 1 {
			out[id-1] = n
		}
	}
	return out
}
