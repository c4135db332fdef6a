// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"profclust/internal/annotate"
	"profclust/internal/cli"
	"profclust/internal/logging"
	"profclust/internal/pipeline"
	"profclust/internal/version"
	"profclust/internal/writers"
)

const name = "profclust"

// Exit codes.
const (
	ExitOK        = 0
	ExitInput     = 2 // usage, validation or malformed input
	ExitOutput    = 3 // an output artifact could not be written
	ExitCancelled = 130
)

// flush reports the exit code for a usage/version/examples print.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitOutput
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, ExitOK)
		case errors.Is(err, cli.ErrPrintedAndExitOK):
			cli.PrintExamples(outw, name)
			return flush(outw, stderr, ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, ExitInput)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flush(outw, stderr, ExitOK)
	}

	log := logging.New(stderr, opts.Quiet, opts.Verbose)
	res, err := pipeline.Run(parent, configFrom(opts), log)
	if err != nil {
		code := exitCode(err)
		if code != ExitCancelled {
			log.Error("run failed", slog.Any("error", err))
		}
		return code
	}
	log.Info("done",
		"profiles", res.Profiles,
		"clusters", res.Clusters,
		"annotated", res.Annotated,
		"propagated", res.Propagated,
		"distances", res.Strategy.String(),
		"report", res.ReportPath,
	)
	return ExitOK
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func configFrom(o cli.Options) pipeline.Config {
	return pipeline.Config{
		ProfilesPath:     o.ProfilesPath,
		AnnotationPaths:  o.AnnotationPaths,
		CorrelationsPath: o.CorrelationsPath,
		OutputDir:        o.OutputDir,
		Thresholds: annotate.Thresholds{
			FeatureOverProfile: o.OverlapFtoP,
			ProfileOverFeature: o.OverlapPtoF,
		},
		Density:      o.Density,
		Halo:         !o.NoHalo,
		Seed:         o.Seed,
		Window:       o.Window,
		Format:       o.Format,
		Summary:      o.Summary,
		ExportPath:   o.ExportPath,
		ExportDriver: o.ExportDriver,
	}
}

func exitCode(err error) int {
	var oe *pipeline.OutputError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCancelled
	case errors.As(err, &oe), writers.IsBrokenPipe(err):
		return ExitOutput
	default:
		return ExitInput
	}
}
