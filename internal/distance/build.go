// internal/distance/build.go
package distance

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/mdobak/go-xerrors"

	"profclust/internal/profile"
)

// ErrShortScores marks a precomputed score stream that ended mid-row.
var ErrShortScores = errors.New("precomputed scores ended before the matrix was complete")

// Strategy selects how the matrix is built. Exactly one runs per pipeline.
type Strategy int

const (
	Compute Strategy = iota
	Load
)

func (s Strategy) String() string {
	if s == Load {
		return "load"
	}
	return "compute"
}

// StrategyFor resolves the strategy once from configuration.
func StrategyFor(correlationsPath string) Strategy {
	if correlationsPath != "" {
		return Load
	}
	return Compute
}

// Scorer is the pairwise shape-similarity contract. Any finite range is
// allowed; an error aborts the build.
type Scorer interface {
	Score(a, b *profile.Profile) (float64, error)
}

// ScoreFunc adapts a plain function to Scorer.
type ScoreFunc func(a, b *profile.Profile) float64

func (f ScoreFunc) Score(a, b *profile.Profile) (float64, error) { return f(a, b), nil }

// LoadFrom replays an upper-triangular, row-major score stream
// ((0,1),(0,2),...,(0,n-1),(1,2),...) into an n x n matrix. The stream must
// hold exactly n(n-1)/2 values.
func LoadFrom(r io.Reader, path string, n int) (*Matrix, error) {
	m := NewMatrix(n)
	sr := profile.NewScoreReader(r, path)
	want := Pairs(n)
	got := 0
	i, j := 0, 1
	for {
		v, err := sr.Next()
		switch profile.Status(err) {
		case -1:
			return nil, err
		case 0:
			if got < want {
				return nil, xerrors.New(fmt.Errorf("%s: %w (%d of %d values, stopped in row %d)", path, ErrShortScores, got, want, i))
			}
			m.ZeroDiagonal()
			return m, nil
		}
		if got == want {
			return nil, xerrors.New(&profile.FormatError{Path: path, Line: got + 1,
				Err: fmt.Errorf("extra score beyond %d expected for %d profiles", want, n)})
		}
		m.Set(i, j, v)
		got++
		j++
		if j == n {
			m.cells[i*n+i] = 0
			i++
			j = i + 1
		}
	}
}

// LoadFile opens path and calls LoadFrom.
func LoadFile(path string, n int) (*Matrix, error) {
	rc, err := profile.Open(path)
	if err != nil {
		return nil, xerrors.New(fmt.Errorf("open correlations: %w", err))
	}
	defer func() { _ = rc.Close() }()
	return LoadFrom(rc, path, n)
}

// ComputeFrom scores every unordered pair once and stores
// 1 - max(score, 0). When side is non-nil each pair is also written as
// "id_i<TAB>id_j<TAB>distance".
func ComputeFrom(profiles []profile.Profile, sc Scorer, side io.Writer) (*Matrix, error) {
	n := len(profiles)
	m := NewMatrix(n)
	for i := 0; i < n; i++ {
		m.cells[i*n+i] = 0
		for j := i + 1; j < n; j++ {
			s, err := sc.Score(&profiles[i], &profiles[j])
			if err != nil {
				return nil, xerrors.New(fmt.Errorf("score %s vs %s: %w", profiles[i].ID(), profiles[j].ID(), err))
			}
			if s < 0 {
				s = 0
			}
			m.Set(i, j, 1-s)
		}
	}
	if side != nil {
		if err := WritePairs(side, profiles, m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// WritePairs writes the upper triangle of m, one pair per line.
func WritePairs(w io.Writer, profiles []profile.Profile, m *Matrix) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%f\n", profiles[i].ID(), profiles[j].ID(), m.At(i, j)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
