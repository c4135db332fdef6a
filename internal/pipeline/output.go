package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mdobak/go-xerrors"

	"profclust/internal/distance"
	"profclust/internal/profile"
	"profclust/internal/store"
	"profclust/internal/writers"
)

// Output file names inside Config.OutputDir.
const (
	SideFile    = "distances.tsv"
	SummaryFile = "clusters.tsv"
)

// OutputError wraps a failure to create or write an output artifact.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *OutputError) Unwrap() error { return e.Err }

func createOutput(dir, name string) (string, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, xerrors.New(&OutputError{Path: dir, Err: err})
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", nil, xerrors.New(&OutputError{Path: path, Err: err})
	}
	return path, f, nil
}

func writeFile(dir, name string, fn func(*os.File) error) (string, error) {
	path, f, err := createOutput(dir, name)
	if err != nil {
		return "", err
	}
	werr := fn(f)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return "", xerrors.New(&OutputError{Path: path, Err: werr})
	}
	return path, nil
}

func writeOutputs(cfg Config, profiles []profile.Profile, m *distance.Matrix, nclusters int, log *slog.Logger) (string, error) {
	format := cfg.Format
	if format == "" {
		format = writers.FormatTSV
	}
	name := writers.FileName(format)
	if name == "" {
		return "", xerrors.New(fmt.Errorf("unknown report format %q", format))
	}
	log.Info("writing report", "dir", cfg.OutputDir, "format", format)
	report, err := writeFile(cfg.OutputDir, name, func(f *os.File) error {
		return writers.Write(format, f, profiles)
	})
	if err != nil {
		return "", err
	}

	if cfg.Summary {
		if _, err := writeFile(cfg.OutputDir, SummaryFile, func(f *os.File) error {
			return writers.WriteClusterSummary(f, profiles, nclusters)
		}); err != nil {
			return "", err
		}
	}

	if cfg.ExportPath != "" {
		log.Info("exporting", "driver", cfg.ExportDriver, "path", cfg.ExportPath)
		ex, err := store.Open(cfg.ExportDriver, cfg.ExportPath)
		if err != nil {
			return "", xerrors.New(&OutputError{Path: cfg.ExportPath, Err: err})
		}
		err = ex.Export(profiles, m)
		if cerr := ex.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", xerrors.New(&OutputError{Path: cfg.ExportPath, Err: err})
		}
	}
	return report, nil
}
