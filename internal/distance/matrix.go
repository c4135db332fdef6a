// Package distance assembles the symmetric NxN profile distance matrix.
package distance

import (
	"fmt"
	"math"
)

// Matrix is a dense symmetric matrix. Unset cells hold NaN.
type Matrix struct {
	n     int
	cells []float64
}

func NewMatrix(n int) *Matrix {
	cells := make([]float64, n*n)
	for i := range cells {
		cells[i] = math.NaN()
	}
	return &Matrix{n: n, cells: cells}
}

func (m *Matrix) N() int { return m.n }

func (m *Matrix) At(i, j int) float64 { return m.cells[i*m.n+j] }

// Set writes v into both (i,j) and (j,i).
func (m *Matrix) Set(i, j int, v float64) {
	m.cells[i*m.n+j] = v
	m.cells[j*m.n+i] = v
}

// ZeroDiagonal sets every (i,i) to 0.
func (m *Matrix) ZeroDiagonal() {
	for i := 0; i < m.n; i++ {
		m.cells[i*m.n+i] = 0
	}
}

// Validate checks the invariants clustering relies on: every cell set,
// symmetric, zero diagonal.
func (m *Matrix) Validate() error {
	for i := 0; i < m.n; i++ {
		if d := m.At(i, i); d != 0 {
			return fmt.Errorf("distance matrix: diagonal (%d,%d) = %v", i, i, d)
		}
		for j := i + 1; j < m.n; j++ {
			a, b := m.At(i, j), m.At(j, i)
			if math.IsNaN(a) || math.IsNaN(b) {
				return fmt.Errorf("distance matrix: cell (%d,%d) unset", i, j)
			}
			if a != b {
				return fmt.Errorf("distance matrix: (%d,%d)=%v but (%d,%d)=%v", i, j, a, j, i, b)
			}
		}
	}
	return nil
}

// Pairs is the number of unordered pairs i<j.
func Pairs(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
