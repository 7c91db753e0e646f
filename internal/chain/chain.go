package chain

import (
	"math"

	"github.com/san-kum/ruinwalk/internal/matrix"
)

// Distribution is a row vector of probabilities over states 0..goal.
type Distribution []float64

func (d Distribution) Clone() Distribution {
	c := make(Distribution, len(d))
	copy(c, d)
	return c
}

func (d Distribution) Sum() float64 {
	sum := 0.0
	for _, v := range d {
		sum += v
	}
	return sum
}

// IsValid reports whether every entry is finite and non-negative.
func (d Distribution) IsValid() bool {
	for _, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// TransitionMatrix returns the (goal+1)x(goal+1) one-step transition
// matrix. Rows 0 and goal are one-hot at the diagonal (absorbing);
// every interior row i carries q = 1-p at column i-1 and p at column
// i+1, so each row sums to exactly 1.
//
// Callers must pass goal >= 1 and p in [0,1]; the session layer clamps
// raw inputs before they reach this builder.
func TransitionMatrix(goal int, p float64) matrix.Matrix {
	q := 1 - p
	m := matrix.New(goal+1, goal+1)
	m.Set(0, 0, 1)
	m.Set(goal, goal, 1)
	for i := 1; i < goal; i++ {
		m.Set(i, i-1, q)
		m.Set(i, i+1, p)
	}
	return m
}

// InitialDistribution returns the one-hot distribution concentrated at
// start. An out-of-range start yields the all-zero vector; correcting
// a bad starting state is the parameter layer's job, not this
// builder's.
func InitialDistribution(goal, start int) Distribution {
	d := make(Distribution, goal+1)
	if start >= 0 && start <= goal {
		d[start] = 1
	}
	return d
}
