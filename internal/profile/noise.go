package profile

import (
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
)

const (
	// NoiseLength is the fixed size of every profile's noise vector.
	NoiseLength = 1000
	// CLTDraws is the number of uniform draws summed per noise sample.
	CLTDraws = 24
)

// GaussianNoise returns n samples approximately distributed as
// N(mean, variance), built by summing CLTDraws uniforms per sample
// (central limit theorem method, Jeruchim 1992).
func GaussianNoise(rng *rand.Rand, mean, variance float64, n int) []float64 {
	const (
		half  = float64(CLTDraws) / 2
		scale = 12.0 / float64(CLTDraws)
	)
	sd := math.Sqrt(variance)
	norm := math.Sqrt(scale)
	out := make([]float64, n)
	for i := range out {
		x := 0.0
		for j := 0; j < CLTDraws; j++ {
			x += rng.Float64()
		}
		// uniform [0,1]: mu = 0.5, var = 1/12
		x = (x - half) * norm
		out[i] = mean + sd*x
	}
	return out
}

// SignalStats returns the mean and unbiased variance of a signal.
// A single-sample signal has zero variance.
func SignalStats(signal []float64) (mean, variance float64, err error) {
	if mean, err = stats.Mean(signal); err != nil {
		return 0, 0, err
	}
	if len(signal) < 2 {
		return mean, 0, nil
	}
	if variance, err = stats.SampleVariance(signal); err != nil {
		return 0, 0, err
	}
	return mean, variance, nil
}

// Augment fills p.Noise from the statistics of p.Signal.
func Augment(p *Profile, rng *rand.Rand) error {
	mean, variance, err := SignalStats(p.Signal)
	if err != nil {
		return err
	}
	p.Noise = GaussianNoise(rng, mean, variance, NoiseLength)
	return nil
}
