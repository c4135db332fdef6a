package cli

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables consulted for flag defaults. Flags always win.
const (
	EnvOverlapFtoP  = "PROFCLUST_OVERLAP_FTOP"
	EnvOverlapPtoF  = "PROFCLUST_OVERLAP_PTOF"
	EnvDensity      = "PROFCLUST_DENSITY"
	EnvSeed         = "PROFCLUST_SEED"
	EnvOutput       = "PROFCLUST_OUTPUT"
	EnvExportDriver = "PROFCLUST_EXPORT_DRIVER"
)

type defaults struct {
	ftop, ptof, density float64
	seed                int64
	output, driver      string
}

func envDefaults(lookup func(string) (string, bool)) (defaults, error) {
	d := defaults{ftop: 0.5, ptof: 0.5, density: 0.02, seed: 1, driver: "sqlite"}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	floats := []struct {
		key string
		dst *float64
	}{{EnvOverlapFtoP, &d.ftop}, {EnvOverlapPtoF, &d.ptof}, {EnvDensity, &d.density}}
	for _, f := range floats {
		if v, ok := lookup(f.key); ok && v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return d, fmt.Errorf("%s: %q is not a number", f.key, v)
			}
			*f.dst = x
		}
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return d, fmt.Errorf("%s: %q is not an integer", EnvSeed, v)
		}
		d.seed = x
	}
	if v, ok := lookup(EnvOutput); ok {
		d.output = v
	}
	if v, ok := lookup(EnvExportDriver); ok && v != "" {
		d.driver = v
	}
	return d, nil
}
