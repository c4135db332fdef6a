package distance

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"profclust/internal/profile"
)

func profiles(n int) []profile.Profile {
	ps := make([]profile.Profile, n)
	for i := range ps {
		ps[i] = profile.Profile{Chrom: "chr1", Start: i * 10, End: i*10 + 4, Strand: profile.Strand(i % 2)}
	}
	return ps
}

func checkInvariants(t *testing.T, m *Matrix) {
	t.Helper()
	if err := m.Validate(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	for i := 0; i < m.N(); i++ {
		if m.At(i, i) != 0 {
			t.Fatalf("diag %d = %v", i, m.At(i, i))
		}
		for j := 0; j < m.N(); j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Fatalf("asymmetric at %d,%d", i, j)
			}
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	const n = 5
	want := make(map[[2]int]float64)
	var sb strings.Builder
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 0.1*float64(i) + 0.013*float64(j) + 1e-9*float64(k)
			want[[2]int{i, j}] = v
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			sb.WriteByte('\n')
			k++
		}
	}
	m, err := LoadFrom(strings.NewReader(sb.String()), "mem", n)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	checkInvariants(t, m)
	for ij, v := range want {
		if m.At(ij[0], ij[1]) != v || m.At(ij[1], ij[0]) != v {
			t.Fatalf("cell %v = %v, want %v", ij, m.At(ij[0], ij[1]), v)
		}
	}
}

func TestLoadShortStream(t *testing.T) {
	_, err := LoadFrom(strings.NewReader("0.1\n0.2\n"), "mem", 3)
	if !errors.Is(err, ErrShortScores) {
		t.Fatalf("want ErrShortScores, got %v", err)
	}
	_, err = LoadFrom(strings.NewReader(""), "mem", 2)
	if !errors.Is(err, ErrShortScores) {
		t.Fatalf("empty stream: want ErrShortScores, got %v", err)
	}
}

func TestLoadMalformedAndExtra(t *testing.T) {
	var fe *profile.FormatError
	if _, err := LoadFrom(strings.NewReader("0.1\nx\n0.3\n"), "mem", 3); !errors.As(err, &fe) || fe.Line != 2 {
		t.Fatalf("want format error on line 2, got %v", err)
	}
	if _, err := LoadFrom(strings.NewReader("0.1\n0.2\n0.3\n0.4\n"), "mem", 3); !errors.As(err, &fe) {
		t.Fatalf("want format error for extra value, got %v", err)
	}
}

func TestLoadRejectsNonFinite(t *testing.T) {
	for _, in := range []string{"Inf\nInf\n0.1\n", "0.1\nNaN\n0.2\n", "0.1\n0.2\n-Infinity\n"} {
		_, err := LoadFrom(strings.NewReader(in), "corr.txt", 3)
		var fe *profile.FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("%q: want format error, got %v", in, err)
		}
		if fe.Path != "corr.txt" || !strings.Contains(err.Error(), "corr.txt:") {
			t.Fatalf("%q: error does not name the file: %v", in, err)
		}
	}
	_, err := LoadFrom(strings.NewReader("0.1\nNaN\n0.2\n"), "corr.txt", 3)
	var fe *profile.FormatError
	if errors.As(err, &fe) && fe.Line != 2 {
		t.Fatalf("NaN reported on line %d, want 2", fe.Line)
	}
}

func TestLoadSingleProfile(t *testing.T) {
	m, err := LoadFrom(strings.NewReader(""), "mem", 1)
	if err != nil || m.N() != 1 || m.At(0, 0) != 0 {
		t.Fatalf("n=1: %v", err)
	}
}

func TestComputeClampAndSymmetry(t *testing.T) {
	ps := profiles(4)
	calls := map[[2]int]int{}
	index := func(p *profile.Profile) int { return p.Start / 10 }
	sc := ScoreFunc(func(a, b *profile.Profile) float64 {
		i, j := index(a), index(b)
		calls[[2]int{i, j}]++
		switch {
		case i == 0 && j == 1:
			return -0.7
		case i == 0 && j == 2:
			return 1.5
		}
		return 0.25
	})
	var side bytes.Buffer
	m, err := ComputeFrom(ps, sc, &side)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	checkInvariants(t, m)
	if len(calls) != Pairs(4) {
		t.Fatalf("scored %d pairs, want %d", len(calls), Pairs(4))
	}
	for ij, c := range calls {
		if c != 1 || ij[0] >= ij[1] {
			t.Fatalf("pair %v scored %d times", ij, c)
		}
	}
	if m.At(0, 1) != 1 {
		t.Fatalf("negative similarity must give distance 1, got %v", m.At(0, 1))
	}
	if math.Abs(m.At(0, 2)-(-0.5)) > 1e-12 {
		t.Fatalf("similarity 1.5 gives %v, want -0.5", m.At(0, 2))
	}
	if m.At(2, 3) != 0.75 {
		t.Fatalf("got %v", m.At(2, 3))
	}

	lines := strings.Split(strings.TrimSpace(side.String()), "\n")
	if len(lines) != Pairs(4) {
		t.Fatalf("side file has %d lines", len(lines))
	}
	if lines[0] != "chr1:0-4:+\tchr1:10-14:-\t1.000000" {
		t.Fatalf("side line %q", lines[0])
	}
}

func TestBuilderLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corr.txt")
	_ = os.WriteFile(path, []byte("0.5\n0.25\n0.75\n"), 0o644)
	m, err := Builder{Strategy: StrategyFor(path), ScoresPath: path}.Build(profiles(3))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	checkInvariants(t, m)
	if m.At(1, 2) != 0.75 || m.At(2, 0) != 0.25 {
		t.Fatalf("bad cells")
	}
	if StrategyFor("") != Compute {
		t.Fatal("empty path must select compute")
	}
}

func TestValidateUnset(t *testing.T) {
	m := NewMatrix(2)
	m.ZeroDiagonal()
	if err := m.Validate(); err == nil {
		t.Fatal("unset cell not detected")
	}
}

type failingScorer struct{ after int }

func (f *failingScorer) Score(a, b *profile.Profile) (float64, error) {
	if f.after == 0 {
		return 0, errors.New("series too long")
	}
	f.after--
	return 1, nil
}

func TestComputeScorerErrorAborts(t *testing.T) {
	ps := profiles(3)
	var side bytes.Buffer
	_, err := ComputeFrom(ps, &failingScorer{after: 1}, &side)
	if err == nil || !strings.Contains(err.Error(), "series too long") || !strings.Contains(err.Error(), ps[0].ID()) {
		t.Fatalf("want scorer error naming the pair, got %v", err)
	}
	if side.Len() != 0 {
		t.Fatalf("side file written after a failed build: %q", side.String())
	}
}
