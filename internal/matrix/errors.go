package matrix

import "errors"

// Sentinel errors. Operations wrap them with the operation name, so callers
// match with errors.Is.
var (
	// ErrDimensionMismatch indicates operands of different side length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare indicates a ragged or non-square operand.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrBadTerms indicates a negative series order for Exp.
	ErrBadTerms = errors.New("matrix: series order must be >= 0")
)
