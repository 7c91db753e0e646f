package chain

import (
	"fmt"

	"github.com/san-kum/ruinwalk/internal/matrix"
)

// Step computes the row-vector product d*m: out[j] = sum_i d[i]*m[i][j].
// No normalization is performed; a distribution that does not sum to 1
// propagates its distortion.
func Step(d Distribution, m matrix.Matrix) (Distribution, error) {
	if len(d) != m.Rows {
		return nil, fmt.Errorf("%w: vector length %d vs %d matrix rows", matrix.ErrDimensionMismatch, len(d), m.Rows)
	}
	out := make(Distribution, m.Cols)
	for i, di := range d {
		if di == 0 {
			continue
		}
		for j := 0; j < m.Cols; j++ {
			out[j] += di * m.At(i, j)
		}
	}
	return out, nil
}

// Propagate advances d by k steps in one shot via m^k. This is the
// only multi-step path: stepping k times sequentially would defeat the
// squaring and is kept solely as a test reference.
func Propagate(d Distribution, m matrix.Matrix, k int) (Distribution, error) {
	mk, err := matrix.Pow(m, k)
	if err != nil {
		return nil, err
	}
	return Step(d, mk)
}
