// Package matrix implements the small set of dense square-matrix operations
// needed by the state-transition integrator: product, scaling, sum,
// identity, zero matrix and a fixed-order Maclaurin exponential.
//
// A Matrix is a slice of rows; every row has the same length as the outer
// slice. All operations allocate and return a new matrix and never modify
// their operands.
package matrix

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

type Matrix [][]float64

// New copies rows into a fresh Matrix after checking they form a square.
func New(rows [][]float64) (Matrix, error) {
	m := Matrix(rows)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

func Zeros(side int) Matrix {
	m := make(Matrix, side)
	for i := range m {
		m[i] = make([]float64, side)
	}
	return m
}

func Identity(side int) Matrix {
	m := Zeros(side)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// Side returns the side length s of an s×s matrix.
func (m Matrix) Side() int { return len(m) }

func (m Matrix) At(i, j int) float64 { return m[i][j] }

func (m Matrix) Validate() error {
	for i, row := range m {
		if len(row) != len(m) {
			return fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), len(m), ErrNonSquare)
		}
	}
	return nil
}

func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i, row := range m {
		c[i] = make([]float64, len(row))
		copy(c[i], row)
	}
	return c
}

func (m Matrix) String() string {
	var sb strings.Builder
	for _, row := range m {
		sb.WriteString("[")
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", v)
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

func checkPair(op string, a, b Matrix) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if a.Side() != b.Side() {
		return fmt.Errorf("%s: %dx%d and %dx%d: %w", op, a.Side(), a.Side(), b.Side(), b.Side(), ErrDimensionMismatch)
	}
	return nil
}

func (m Matrix) dense() *mat.Dense {
	s := m.Side()
	data := make([]float64, 0, s*s)
	for _, row := range m {
		data = append(data, row...)
	}
	return mat.NewDense(s, s, data)
}

func fromDense(d *mat.Dense) Matrix {
	r, _ := d.Dims()
	m := Zeros(r)
	for i := range m {
		mat.Row(m[i], i, d)
	}
	return m
}

// Multiply returns the product a·b.
func Multiply(a, b Matrix) (Matrix, error) {
	if err := checkPair("Multiply", a, b); err != nil {
		return nil, err
	}
	if a.Side() == 0 {
		return Zeros(0), nil
	}
	var out mat.Dense
	out.Mul(a.dense(), b.dense())
	return fromDense(&out), nil
}

// Scale returns k·a.
func Scale(a Matrix, k float64) Matrix {
	out := make(Matrix, len(a))
	for i, row := range a {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = v * k
		}
	}
	return out
}

// Add returns a+b.
func Add(a, b Matrix) (Matrix, error) {
	if err := checkPair("Add", a, b); err != nil {
		return nil, err
	}
	out := Zeros(a.Side())
	for i := range a {
		for j := range a[i] {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out, nil
}

func Transpose(a Matrix) Matrix {
	out := Zeros(len(a))
	for i := range a {
		for j := range a[i] {
			out[j][i] = a[i][j]
		}
	}
	return out
}

// Equal reports whether a and b have the same side and every element
// differs by at most tol.
func Equal(a, b Matrix, tol float64) bool {
	if a.Side() != b.Side() {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if math.Abs(a[i][j]-b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}
