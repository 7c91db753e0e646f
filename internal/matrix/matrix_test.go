package matrix

import (
	"errors"
	"math"
	"testing"
)

func fromRows(rows [][]float64) Matrix {
	m := New(len(rows), len(rows[0]))
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}

func matricesClose(a, b Matrix, tol float64) bool {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return false
	}
	for i := range a.Data {
		if math.Abs(a.Data[i]-b.Data[i]) > tol {
			return false
		}
	}
	return true
}

func TestMul(t *testing.T) {
	a := fromRows([][]float64{{1, 2}, {3, 4}})
	b := fromRows([][]float64{{5, 6}, {7, 8}})

	c, err := Mul(a, b)
	if err != nil {
		t.Fatalf("mul failed: %v", err)
	}

	want := fromRows([][]float64{{19, 22}, {43, 50}})
	if !matricesClose(c, want, 0) {
		t.Errorf("Mul = %v, want %v", c.Data, want.Data)
	}
}

func TestMul_Rectangular(t *testing.T) {
	a := fromRows([][]float64{{1, 2, 3}})     // 1x3
	b := fromRows([][]float64{{4}, {5}, {6}}) // 3x1

	c, err := Mul(a, b)
	if err != nil {
		t.Fatalf("mul failed: %v", err)
	}
	if c.Rows != 1 || c.Cols != 1 {
		t.Fatalf("expected 1x1 result, got %dx%d", c.Rows, c.Cols)
	}
	if c.At(0, 0) != 32 {
		t.Errorf("expected 32, got %f", c.At(0, 0))
	}
}

func TestMul_DimensionMismatch(t *testing.T) {
	a := New(2, 3)
	b := New(2, 3)

	_, err := Mul(a, b)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestPow_Zero(t *testing.T) {
	m := fromRows([][]float64{{2, 1}, {1, 3}})

	p, err := Pow(m, 0)
	if err != nil {
		t.Fatalf("pow failed: %v", err)
	}
	if !matricesClose(p, Identity(2), 0) {
		t.Errorf("Pow(m, 0) = %v, want identity", p.Data)
	}
}

func TestPow_OneIsNotAliased(t *testing.T) {
	m := fromRows([][]float64{{1, 2}, {3, 4}})

	p, err := Pow(m, 1)
	if err != nil {
		t.Fatalf("pow failed: %v", err)
	}
	if !matricesClose(p, m, 0) {
		t.Fatalf("Pow(m, 1) should equal m")
	}

	p.Set(0, 0, 99)
	if m.At(0, 0) == 99 {
		t.Error("Pow(m, 1) aliased the input matrix")
	}
}

func TestPow_MatchesRepeatedMul(t *testing.T) {
	m := fromRows([][]float64{{0.5, 0.5}, {0.25, 0.75}})

	acc := Identity(2)
	for k := 0; k <= 12; k++ {
		p, err := Pow(m, k)
		if err != nil {
			t.Fatalf("pow(%d) failed: %v", k, err)
		}
		if !matricesClose(p, acc, 1e-12) {
			t.Errorf("Pow(m, %d) diverges from repeated multiplication", k)
		}
		acc, err = Mul(acc, m)
		if err != nil {
			t.Fatalf("mul failed: %v", err)
		}
	}
}

func TestPow_SemigroupLaw(t *testing.T) {
	m := fromRows([][]float64{{0.9, 0.1, 0}, {0.2, 0.5, 0.3}, {0, 0.4, 0.6}})

	cases := []struct{ k1, k2 int }{
		{0, 0}, {0, 5}, {1, 1}, {3, 4}, {7, 9}, {20, 31},
	}
	for _, tc := range cases {
		p1, _ := Pow(m, tc.k1)
		p2, _ := Pow(m, tc.k2)
		prod, err := Mul(p1, p2)
		if err != nil {
			t.Fatalf("mul failed: %v", err)
		}
		sum, err := Pow(m, tc.k1+tc.k2)
		if err != nil {
			t.Fatalf("pow failed: %v", err)
		}
		if !matricesClose(prod, sum, 1e-9) {
			t.Errorf("Pow(m,%d)*Pow(m,%d) != Pow(m,%d)", tc.k1, tc.k2, tc.k1+tc.k2)
		}
	}
}

func TestPow_NegativeExponent(t *testing.T) {
	m := Identity(2)
	_, err := Pow(m, -1)
	if !errors.Is(err, ErrInvalidExponent) {
		t.Errorf("expected ErrInvalidExponent, got %v", err)
	}
}

func TestPow_NotSquare(t *testing.T) {
	m := New(2, 3)
	_, err := Pow(m, 2)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCloneAndRow(t *testing.T) {
	m := fromRows([][]float64{{1, 2}, {3, 4}})

	c := m.Clone()
	c.Set(1, 1, 42)
	if m.At(1, 1) == 42 {
		t.Error("Clone did not create an independent copy")
	}

	r := m.Row(0)
	r[0] = 7
	if m.At(0, 0) == 7 {
		t.Error("Row did not return a copy")
	}
}
