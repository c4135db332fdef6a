// internal/profile/decode.go
package profile

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

var (
	errEmptyLine = errors.New("empty line")
	errHeader    = errors.New("malformed coordinate header")
	errNotFinite = errors.New("not a finite number")
)

// ParseHeader splits "chrom:start-end:strand". The chromosome may itself
// contain ':'; strand and range are taken from the right.
func ParseHeader(h string) (chrom string, start, end int, strand Strand, err error) {
	sc := strings.LastIndexByte(h, ':')
	if sc <= 0 || sc == len(h)-1 {
		return "", 0, 0, 0, errHeader
	}
	var ok bool
	if strand, ok = ParseStrand(h[sc+1:]); !ok {
		return "", 0, 0, 0, fmt.Errorf("unrecognized strand %q", h[sc+1:])
	}
	rest := h[:sc]
	rc := strings.LastIndexByte(rest, ':')
	if rc <= 0 || rc == len(rest)-1 {
		return "", 0, 0, 0, errHeader
	}
	chrom = rest[:rc]
	span := rest[rc+1:]
	dash := strings.IndexByte(span, '-')
	if dash <= 0 {
		return "", 0, 0, 0, errHeader
	}
	if start, err = strconv.Atoi(span[:dash]); err != nil {
		return "", 0, 0, 0, errHeader
	}
	if end, err = strconv.Atoi(span[dash+1:]); err != nil {
		return "", 0, 0, 0, errHeader
	}
	if end < start {
		return "", 0, 0, 0, fmt.Errorf("end %d before start %d", end, start)
	}
	return chrom, start, end, strand, nil
}

// DecodeProfile decodes "chrom:start-end:strand<TAB>v1<TAB>...<TAB>vN"
// with exactly N = end-start+1 values, and attaches the noise vector.
func DecodeProfile(line string, rng *rand.Rand) (Profile, error) {
	line = trimEOL(line)
	if line == "" {
		return Profile{}, errEmptyLine
	}
	fields := strings.Split(line, "\t")
	chrom, start, end, strand, err := ParseHeader(fields[0])
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		Chrom:      chrom,
		Start:      start,
		End:        end,
		Strand:     strand,
		Annotation: Unknown,
		Cluster:    -1,
		Position:   -1,
	}
	n := p.Len()
	if got := len(fields) - 1; got != n {
		return Profile{}, fmt.Errorf("expected %d signal values, found %d", n, got)
	}
	p.Signal = make([]float64, n)
	for i, f := range fields[1:] {
		v, err := parseFinite(f)
		if err != nil {
			return Profile{}, fmt.Errorf("signal value %d: %q is not a finite number", i+1, f)
		}
		p.Signal[i] = v
	}
	if err := Augment(&p, rng); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// DecodeFeature decodes the eight-column annotation format:
// chrom, start, end, name, score, strand, status, cluster.
func DecodeFeature(line string) (Feature, error) {
	line = trimEOL(line)
	if line == "" {
		return Feature{}, errEmptyLine
	}
	f := strings.Split(line, "\t")
	if len(f) != 8 {
		return Feature{}, fmt.Errorf("expected 8 fields, found %d", len(f))
	}
	var (
		ft  = Feature{Chrom: f[0], Name: f[3]}
		err error
	)
	if ft.Chrom == "" {
		return Feature{}, errors.New("empty chromosome")
	}
	if ft.Start, err = strconv.Atoi(f[1]); err != nil {
		return Feature{}, fmt.Errorf("bad start %q", f[1])
	}
	if ft.End, err = strconv.Atoi(f[2]); err != nil {
		return Feature{}, fmt.Errorf("bad end %q", f[2])
	}
	if ft.Score, err = strconv.ParseFloat(f[4], 64); err != nil {
		return Feature{}, fmt.Errorf("bad score %q", f[4])
	}
	// Anything but "+" is the reverse strand.
	if f[5] == "+" {
		ft.Strand = Forward
	} else {
		ft.Strand = Reverse
	}
	if f[6] == "NOVEL" {
		ft.Status = Novel
	} else {
		ft.Status = Known
	}
	if ft.Cluster, err = strconv.Atoi(f[7]); err != nil {
		return Feature{}, fmt.Errorf("bad cluster id %q", f[7])
	}
	return ft, nil
}

// DecodeScore decodes one precomputed upper-triangular matrix cell.
func DecodeScore(line string) (float64, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return 0, errEmptyLine
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("bad score %q", s)
	}
	return v, nil
}

// parseFinite is strconv.ParseFloat without NaN and ±Inf.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

func trimEOL(s string) string { return strings.TrimRight(s, "\r\n") }
