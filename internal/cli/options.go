// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"profclust/internal/cliutil"
	"profclust/internal/store"
	"profclust/internal/writers"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller asked for
// examples. Apps should exit 0 after printing them.
var ErrPrintedAndExitOK = errors.New("examples requested")

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	ProfilesPath     string
	AnnotationPaths  []string
	CorrelationsPath string

	// Annotation
	OverlapFtoP float64 // min fraction of the feature covered by the profile
	OverlapPtoF float64 // min fraction of the profile covered by the feature

	// Clustering
	Density float64
	NoHalo  bool
	Seed    int64
	Window  int // DTW band radius, 0 = unbounded

	// Output
	OutputDir    string
	Format       string
	Summary      bool
	ExportPath   string
	ExportDriver string

	Quiet   bool
	Verbose bool
	Version bool
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, os.Args[1:]) }

// ParseArgs registers and parses all flags, returns an Options struct.
// Positional arguments are treated as additional annotation files and
// may be globs.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	return parseArgs(fs, argv, os.LookupEnv)
}

func parseArgs(fs *flag.FlagSet, argv []string, lookup func(string) (string, bool)) (Options, error) {
	var opt Options
	var help, showExamples bool

	def, envErr := envDefaults(lookup)

	// Input
	fs.StringVar(&opt.ProfilesPath, "profiles", "", "profile file (TSV, '-' or .gz) [*]")
	fs.StringVar(&opt.ProfilesPath, "p", "", "alias of --profiles")
	var ann stringSlice
	fs.Var(&ann, "annotation", "feature file (repeatable)")
	fs.Var(&ann, "a", "alias of --annotation")
	fs.StringVar(&opt.CorrelationsPath, "correlations", "", "precomputed upper-triangular score stream (skips DTW)")
	fs.StringVar(&opt.CorrelationsPath, "c", "", "alias of --correlations")

	// Annotation
	fs.Float64Var(&opt.OverlapFtoP, "overlap-ftop", def.ftop, "min fraction of feature overlapped by profile")
	fs.Float64Var(&opt.OverlapPtoF, "overlap-ptof", def.ptof, "min fraction of profile overlapped by feature")

	// Clustering
	fs.Float64Var(&opt.Density, "density", def.density, "cutoff distance quantile for density-peak clustering")
	fs.BoolVar(&opt.NoHalo, "no-halo", false, "keep border points in their cluster")
	fs.Int64Var(&opt.Seed, "seed", def.seed, "noise generator seed")
	fs.IntVar(&opt.Window, "window", 0, "DTW band radius (0 = unbounded)")

	// Output
	fs.StringVar(&opt.OutputDir, "output", def.output, "output directory [*]")
	fs.StringVar(&opt.OutputDir, "o", def.output, "alias of --output")
	fs.StringVar(&opt.Format, "format", writers.FormatTSV, "report format: "+strings.Join(writers.Formats(), " | "))
	fs.BoolVar(&opt.Summary, "summary", false, "also write a per-cluster summary")
	fs.StringVar(&opt.ExportPath, "export", "", "export profiles and distances to a database file")
	fs.StringVar(&opt.ExportDriver, "export-driver", def.driver, "export backend: "+strings.Join(store.Drivers(), " | "))

	fs.BoolVar(&opt.Quiet, "quiet", false, "only log errors")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Verbose, "verbose", false, "log per-stage details")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand)")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand)")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if showExamples {
		return opt, ErrPrintedAndExitOK
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if envErr != nil {
		return opt, envErr
	}

	extra, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.AnnotationPaths = append(ann, extra...)

	// Validation
	if opt.ProfilesPath == "" {
		return opt, errors.New("--profiles is required")
	}
	if opt.OutputDir == "" {
		return opt, errors.New("--output is required")
	}
	if opt.OverlapFtoP < 0 || opt.OverlapFtoP > 1 {
		return opt, errors.New("--overlap-ftop must be within [0,1]")
	}
	if opt.OverlapPtoF < 0 || opt.OverlapPtoF > 1 {
		return opt, errors.New("--overlap-ptof must be within [0,1]")
	}
	if opt.Density <= 0 || opt.Density > 1 {
		return opt, errors.New("--density must be within (0,1]")
	}
	if opt.Window < 0 {
		return opt, errors.New("--window must be ≥ 0")
	}
	if !writers.Known(opt.Format) {
		return opt, fmt.Errorf("invalid --format %q", opt.Format)
	}
	if !knownDriver(opt.ExportDriver) {
		return opt, fmt.Errorf("invalid --export-driver %q", opt.ExportDriver)
	}
	if stdinInputs(opt) > 1 {
		return opt, errors.New("only one input may read stdin ('-')")
	}
	return opt, nil
}

func stdinInputs(o Options) int {
	n := 0
	for _, p := range append([]string{o.ProfilesPath, o.CorrelationsPath}, o.AnnotationPaths...) {
		if p == "-" {
			n++
		}
	}
	return n
}

func knownDriver(d string) bool {
	for _, k := range store.Drivers() {
		if d == k {
			return true
		}
	}
	return false
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
