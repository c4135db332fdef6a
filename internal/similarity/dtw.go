// Package similarity scores the shape agreement of two profiles.
package similarity

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlath/dtw"

	"profclust/internal/profile"
)

// DTW scores profiles by dynamic time warping over z-normalised signals.
// Window is the Sakoe-Chiba band radius; zero or negative means unbounded.
type DTW struct {
	Window       int
	SlopePenalty float64
}

// Score returns 1 - dist/len. Identical shapes score 1; the value is
// unbounded below. A profile shorter than its partner is extended with its
// own noise so both series have the same length.
func (d DTW) Score(a, b *profile.Profile) (float64, error) {
	n := len(a.Signal)
	if len(b.Signal) > n {
		n = len(b.Signal)
	}
	if n == 0 {
		return 0, nil
	}
	x := series(a, n)
	y := series(b, n)

	win := d.Window
	if win <= 0 || win > n {
		win = n
	}
	dist, _, err := dtw.DTW(x, y, &dtw.DTWOptions{
		Window:       win,
		SlopePenalty: d.SlopePenalty,
		ReturnPath:   false,
		MemoryMode:   dtw.TwoRows,
	})
	if err != nil {
		return 0, fmt.Errorf("dtw: %w", err)
	}
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return 0, fmt.Errorf("dtw: non-finite distance %v", dist)
	}
	return 1 - dist/float64(n), nil
}

// series z-normalises p.Signal and pads it to n samples from p.Noise,
// normalised with the same mean and deviation.
func series(p *profile.Profile, n int) []float64 {
	mean, variance, err := profile.SignalStats(p.Signal)
	if err != nil {
		return make([]float64, n)
	}
	sd := math.Sqrt(variance)
	z := func(v float64) float64 {
		if sd == 0 {
			return 0
		}
		return (v - mean) / sd
	}
	out := make([]float64, n)
	for i := range out {
		switch {
		case i < len(p.Signal):
			out[i] = z(p.Signal[i])
		case len(p.Noise) > 0:
			out[i] = z(p.Noise[(i-len(p.Signal))%len(p.Noise)])
		}
	}
	return out
}
