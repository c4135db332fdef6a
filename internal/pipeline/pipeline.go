// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/mdobak/go-xerrors"

	"profclust/internal/annotate"
	"profclust/internal/cluster"
	"profclust/internal/distance"
	"profclust/internal/profile"
	"profclust/internal/propagate"
	"profclust/internal/similarity"
)

// Config controls one batch run.
type Config struct {
	ProfilesPath     string
	AnnotationPaths  []string
	CorrelationsPath string // non-empty selects distance.Load
	OutputDir        string

	Thresholds annotate.Thresholds
	Density    float64 // dc quantile for density-peak clustering
	Halo       bool
	Seed       int64 // noise RNG seed
	Window     int   // DTW band radius, 0 = unbounded

	Format       string // report format, see writers.Formats
	Summary      bool   // also write clusters.tsv
	ExportPath   string
	ExportDriver string

	// Optional collaborators; nil selects the defaults.
	Scorer    distance.Scorer
	Clusterer Clusterer
}

// Clusterer assigns Cluster/Position on every profile and returns the
// cluster count.
type Clusterer interface {
	Cluster(m *distance.Matrix, profiles []profile.Profile) int
}

// Result summarizes a finished run.
type Result struct {
	Profiles   int
	Annotated  int // profiles labelled directly from features
	Propagated int // profiles labelled from a cluster-mate
	Clusters   int
	Strategy   distance.Strategy
	ReportPath string
	SidePath   string // computed distances, empty in load mode
}

// Run executes parse → annotate → distances → cluster → propagate → report.
// Every stage completes before the next starts; ctx is only consulted
// between stages.
func Run(ctx context.Context, cfg Config, log *slog.Logger) (Result, error) {
	res := Result{Strategy: distance.StrategyFor(cfg.CorrelationsPath)}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if cfg.Scorer == nil {
		cfg.Scorer = similarity.DTW{Window: cfg.Window}
	}
	if cfg.Clusterer == nil {
		cfg.Clusterer = cluster.DensityPeak{Percent: cfg.Density, HaloOn: cfg.Halo}
	}
	annotating := len(cfg.AnnotationPaths) > 0

	log.Info("loading profiles", "path", cfg.ProfilesPath)
	profiles, err := profile.LoadProfiles(cfg.ProfilesPath, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return res, err
	}
	res.Profiles = len(profiles)
	log.Debug("profiles loaded", "count", len(profiles))

	if annotating {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n, err := annotateAll(cfg, profiles, log)
		if err != nil {
			return res, err
		}
		res.Annotated = n
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	m, side, err := buildMatrix(cfg, res.Strategy, profiles, log)
	if err != nil {
		return res, err
	}
	res.SidePath = side

	if err := ctx.Err(); err != nil {
		return res, err
	}
	log.Info("clustering", "profiles", len(profiles), "density", cfg.Density, "halo", cfg.Halo)
	res.Clusters = cfg.Clusterer.Cluster(m, profiles)
	log.Debug("clusters assigned", "clusters", res.Clusters)

	if annotating {
		log.Info("annotating unknown profiles", "clusters", res.Clusters)
		res.Propagated = propagate.Labels(profiles, res.Clusters)
		log.Debug("labels propagated", "profiles", res.Propagated)
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if res.ReportPath, err = writeOutputs(cfg, profiles, m, res.Clusters, log); err != nil {
		return res, err
	}
	return res, nil
}

// annotateAll registers every profile, then replays each annotation file in
// order against the index.
func annotateAll(cfg Config, profiles []profile.Profile, log *slog.Logger) (int, error) {
	ix := annotate.New()
	for i := range profiles {
		ix.Register(&profiles[i])
	}
	log.Info("loading annotations", "files", len(cfg.AnnotationPaths))
	for _, path := range cfg.AnnotationPaths {
		log.Info("reading annotation", "path", path)
		fc := profile.NewFeatureClusters()
		hits, features := 0, 0
		err := profile.ForEachFeature(path, func(f profile.Feature) error {
			features++
			fc.Add(f)
			hits += ix.Annotate(cfg.Thresholds, f.Chrom, f.Start, f.End, f.Strand, f.Name)
			return nil
		})
		if err != nil {
			return 0, err
		}
		log.Debug("annotation read", "path", path, "features", features, "hits", hits,
			"source_clusters", fc.Max, "per_cluster", fc.PerCluster())
	}
	n := 0
	for i := range profiles {
		if profiles[i].Annotated() {
			n++
		}
	}
	return n, nil
}

func buildMatrix(cfg Config, s distance.Strategy, profiles []profile.Profile, log *slog.Logger) (*distance.Matrix, string, error) {
	b := distance.Builder{Strategy: s, ScoresPath: cfg.CorrelationsPath, Scorer: cfg.Scorer}
	if s == distance.Load {
		log.Info("loading distance scores", "path", cfg.CorrelationsPath, "pairs", distance.Pairs(len(profiles)))
		m, err := b.Build(profiles)
		return m, "", err
	}

	log.Info("calculating distance scores", "pairs", distance.Pairs(len(profiles)))
	m, err := b.Build(profiles)
	if err != nil {
		return nil, "", err
	}
	side, err := writeFile(cfg.OutputDir, SideFile, func(f *os.File) error {
		return distance.WritePairs(f, profiles, m)
	})
	if err != nil {
		return nil, "", err
	}
	return m, side, nil
}

// Validate checks configuration the flag layer cannot.
func (c Config) Validate() error {
	if c.ProfilesPath == "" {
		return xerrors.New(fmt.Errorf("no profile file given"))
	}
	if c.OutputDir == "" {
		return xerrors.New(fmt.Errorf("no output directory given"))
	}
	return nil
}
