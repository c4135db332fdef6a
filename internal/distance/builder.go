package distance

import (
	"fmt"
	"io"

	"profclust/internal/profile"
)

// Builder carries everything either strategy needs; Build dispatches on
// Strategy once.
type Builder struct {
	Strategy Strategy

	// Load
	ScoresPath string

	// Compute
	Scorer Scorer
	Side   io.Writer
}

// Build returns a validated matrix for profiles.
func (b Builder) Build(profiles []profile.Profile) (*Matrix, error) {
	var (
		m   *Matrix
		err error
	)
	switch b.Strategy {
	case Load:
		m, err = LoadFile(b.ScoresPath, len(profiles))
	case Compute:
		if b.Scorer == nil {
			return nil, fmt.Errorf("distance: compute strategy without a scorer")
		}
		m, err = ComputeFrom(profiles, b.Scorer, b.Side)
	default:
		return nil, fmt.Errorf("distance: unknown strategy %d", b.Strategy)
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
