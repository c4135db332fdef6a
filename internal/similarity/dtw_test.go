package similarity

import (
	"math"
	"math/rand"
	"testing"

	"profclust/internal/profile"
)

func mk(t *testing.T, signal ...float64) *profile.Profile {
	t.Helper()
	p := &profile.Profile{Start: 1, End: len(signal), Signal: signal}
	if err := profile.Augment(p, rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("augment: %v", err)
	}
	return p
}

func score(t *testing.T, d DTW, a, b *profile.Profile) float64 {
	t.Helper()
	s, err := score(t, d, a, b)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	return s
}

func TestScoreIdentical(t *testing.T) {
	a := mk(t, 0, 1, 4, 9, 4, 1, 0)
	b := mk(t, 0, 1, 4, 9, 4, 1, 0)
	if s := score(t, DTW{Window: -1}, a, b); math.Abs(s-1) > 1e-9 {
		t.Fatalf("identical shapes scored %v", s)
	}
}

func TestScoreScaleInvariantAndSymmetric(t *testing.T) {
	a := mk(t, 0, 1, 4, 9, 4, 1, 0)
	b := mk(t, 0, 10, 40, 90, 40, 10, 0)
	c := mk(t, 9, 4, 1, 0, 1, 4, 9)
	d := DTW{Window: -1}
	if s := score(t, d, a, b); math.Abs(s-1) > 1e-9 {
		t.Fatalf("scaled shape scored %v", s)
	}
	if score(t, d, a, c) >= score(t, d, a, b) {
		t.Fatalf("inverted shape should score lower")
	}
	if score(t, d, a, c) != score(t, d, c, a) {
		t.Fatalf("score not symmetric")
	}
}

func TestScoreDifferentLengths(t *testing.T) {
	a := mk(t, 0, 1, 4, 9, 4, 1, 0)
	b := mk(t, 0, 1, 4, 9, 4)
	s := score(t, DTW{Window: -1}, a, b)
	if math.IsNaN(s) || s > 1 {
		t.Fatalf("unexpected score %v", s)
	}
}

func TestZeroWindowIsUnbounded(t *testing.T) {
	a := mk(t, 0, 1, 4, 9, 4, 1, 0, 0)
	b := mk(t, 0, 0, 0, 1, 4, 9, 4, 1)
	unbounded := score(t, DTW{Window: -1}, a, b)
	if z := score(t, DTW{}, a, b); z != unbounded {
		t.Fatalf("zero window scored %v, unbounded %v", z, unbounded)
	}
	if narrow := score(t, DTW{Window: 1}, a, b); narrow > unbounded {
		t.Fatalf("narrow band scored %v above unbounded %v", narrow, unbounded)
	}
}
