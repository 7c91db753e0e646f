// Package matrix implements the dense float64 algebra behind the chain
// engine: multiplication and exponentiation by squaring. All operations
// are value-semantic; no function mutates its operands.
package matrix

import "fmt"

// Matrix is a dense row-major matrix.
type Matrix struct {
	Rows, Cols int
	Data       []float64
}

// New returns a zero matrix of the given shape.
func New(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// Identity returns the n-by-n identity matrix.
func Identity(n int) Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

func (m Matrix) At(i, j int) float64 { return m.Data[i*m.Cols+j] }

func (m *Matrix) Set(i, j int, v float64) { m.Data[i*m.Cols+j] = v }

// Clone returns an independent copy.
func (m Matrix) Clone() Matrix {
	c := Matrix{Rows: m.Rows, Cols: m.Cols, Data: make([]float64, len(m.Data))}
	copy(c.Data, m.Data)
	return c
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) []float64 {
	r := make([]float64, m.Cols)
	copy(r, m.Data[i*m.Cols:(i+1)*m.Cols])
	return r
}

// IsSquare reports whether the matrix has equal row and column counts.
func (m Matrix) IsSquare() bool { return m.Rows == m.Cols }

// Mul computes the product a*b. The entry sums are exact floating-point
// sums of products; no tolerance is applied at this layer.
func Mul(a, b Matrix) (Matrix, error) {
	if a.Cols != b.Rows {
		return Matrix{}, fmt.Errorf("%w: %dx%d * %dx%d", ErrDimensionMismatch, a.Rows, a.Cols, b.Rows, b.Cols)
	}
	c := New(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		for l := 0; l < a.Cols; l++ {
			ail := a.Data[i*a.Cols+l]
			if ail == 0 {
				continue
			}
			for j := 0; j < b.Cols; j++ {
				c.Data[i*c.Cols+j] += ail * b.Data[l*b.Cols+j]
			}
		}
	}
	return c, nil
}

// Pow computes m^k by binary exponentiation: square the base for each
// bit of k and multiply it into the accumulator when the bit is set,
// giving O(n^3 log k) instead of O(n^3 k). k may be large (thousands of
// steps) while n stays small, which is exactly the regime this trades
// for. k=0 yields the identity; the result is never an alias of m.
func Pow(m Matrix, k int) (Matrix, error) {
	if !m.IsSquare() {
		return Matrix{}, fmt.Errorf("%w: power of %dx%d matrix", ErrDimensionMismatch, m.Rows, m.Cols)
	}
	if k < 0 {
		return Matrix{}, fmt.Errorf("%w: got %d", ErrInvalidExponent, k)
	}

	acc := Identity(m.Rows)
	base := m.Clone()
	for k > 0 {
		if k&1 == 1 {
			next, err := Mul(acc, base)
			if err != nil {
				return Matrix{}, err
			}
			acc = next
		}
		k >>= 1
		if k > 0 {
			sq, err := Mul(base, base)
			if err != nil {
				return Matrix{}, err
			}
			base = sq
		}
	}
	return acc, nil
}
