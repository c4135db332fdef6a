package cli

import (
	"flag"
	"fmt"
	"io"

	"profclust/internal/version"
)

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – cluster and annotate genomic signal profiles\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage: %s -p profiles.tsv -o outdir [flags] [annotation.tsv ...]\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -p, --profiles file          Profile TSV (chrom:start-end:strand, values) or '-' [*]")
		fmt.Fprintln(out, "  -a, --annotation file        Feature TSV (repeatable; positionals and globs also accepted)")
		fmt.Fprintln(out, "  -c, --correlations file      Precomputed distance stream; skips DTW")

		fmt.Fprintln(out, "\nAnnotation:")
		fmt.Fprintf(out, "      --overlap-ftop float     Min fraction of feature covered by profile [%s]\n", def("overlap-ftop"))
		fmt.Fprintf(out, "      --overlap-ptof float     Min fraction of profile covered by feature [%s]\n", def("overlap-ptof"))

		fmt.Fprintln(out, "\nClustering:")
		fmt.Fprintf(out, "      --density float          Cutoff distance quantile [%s]\n", def("density"))
		fmt.Fprintf(out, "      --no-halo                Keep border points in their cluster [%s]\n", def("no-halo"))
		fmt.Fprintf(out, "      --seed int               Noise generator seed [%s]\n", def("seed"))
		fmt.Fprintf(out, "      --window int             DTW band radius (0=unbounded) [%s]\n", def("window"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintln(out, "  -o, --output dir             Output directory [*]")
		fmt.Fprintf(out, "      --format string          Report format: tsv | jsonl [%s]\n", def("format"))
		fmt.Fprintf(out, "      --summary                Also write clusters.tsv [%s]\n", def("summary"))
		fmt.Fprintln(out, "      --export file            Export profiles and distances to a database")
		fmt.Fprintf(out, "      --export-driver string   Export backend: sqlite | bolt [%s]\n", def("export-driver"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "  -q, --quiet                  Only log errors")
		fmt.Fprintln(out, "      --verbose                Log per-stage details")
		fmt.Fprintln(out, "      --examples               Show quickstart examples and exit")
		fmt.Fprintln(out, "  -v, --version                Print version and exit")
		fmt.Fprintln(out, "  -h, --help                   Show this help and exit")

		fmt.Fprintln(out, "\nEnvironment (flag defaults, also read from ./.env):")
		for _, k := range []string{EnvOverlapFtoP, EnvOverlapPtoF, EnvDensity, EnvSeed, EnvOutput, EnvExportDriver} {
			fmt.Fprintf(out, "  %s\n", k)
		}
	}
	return fs
}

// PrintExamples prints a short quickstart followed by a pointer to --help.
func PrintExamples(out io.Writer, name string) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	_, _ = fmt.Fprintf(out, "  # cluster only, DTW distances\n  %s -p peaks.tsv -o out\n\n", name)
	_, _ = fmt.Fprintf(out, "  # annotate from two feature files and propagate labels\n  %s -p peaks.tsv -o out genes.tsv ncrna.tsv\n\n", name)
	_, _ = fmt.Fprintf(out, "  # reuse precomputed distances, JSONL report, SQLite export\n  %s -p peaks.tsv -c dist.txt -o out --format jsonl --export run.db\n", name)
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
