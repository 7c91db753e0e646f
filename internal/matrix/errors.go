package matrix

import "errors"

// Domain errors for matrix operations.
var (
	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInvalidExponent indicates a negative exponent passed to Pow.
	ErrInvalidExponent = errors.New("matrix: exponent must be non-negative")
)
