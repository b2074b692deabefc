package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/matrix"
)

// Default suspension model: body and wheel masses [kg],
// spring stiffness [N/m] and damping [N*s/m].
const (
	DefaultM1 = 2000.0
	DefaultM2 = 500.0
	DefaultK1 = 500000.0
	DefaultK2 = 100000.0
	DefaultB1 = 500.0
	DefaultB2 = 15000.0
)

// MinMass is the smallest |mass| accepted as a denominator.
const MinMass = 1e-12

// State layout used by QuarterCar.Derive and StateMatrix.
const (
	IdxV1 = iota
	IdxV2
	IdxX1
	IdxX2
	StateDim
)

// ParamNames lists the six physical parameters in display order.
var ParamNames = []string{"m1", "m2", "k1", "k2", "b1", "b2"}

// Params is an immutable snapshot of the physical parameters. Edits produce
// a new value through With.
type Params struct {
	M1 float64 `yaml:"m1" json:"m1"`
	M2 float64 `yaml:"m2" json:"m2"`
	K1 float64 `yaml:"k1" json:"k1"`
	K2 float64 `yaml:"k2" json:"k2"`
	B1 float64 `yaml:"b1" json:"b1"`
	B2 float64 `yaml:"b2" json:"b2"`
}

func DefaultParams() Params {
	return Params{
		M1: DefaultM1,
		M2: DefaultM2,
		K1: DefaultK1,
		K2: DefaultK2,
		B1: DefaultB1,
		B2: DefaultB2,
	}
}

// Validate rejects zero masses. Any other real value, including negative
// ones, is accepted.
func (p Params) Validate() error {
	if math.Abs(p.M1) < MinMass {
		return fmt.Errorf("%w: m1=%g", dynamo.ErrDivisionByZero, p.M1)
	}
	if math.Abs(p.M2) < MinMass {
		return fmt.Errorf("%w: m2=%g", dynamo.ErrDivisionByZero, p.M2)
	}
	return nil
}

func (p Params) Get(name string) (float64, error) {
	switch name {
	case "m1":
		return p.M1, nil
	case "m2":
		return p.M2, nil
	case "k1":
		return p.K1, nil
	case "k2":
		return p.K2, nil
	case "b1":
		return p.B1, nil
	case "b2":
		return p.B2, nil
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
}

// With returns a copy of p with one parameter replaced.
func (p Params) With(name string, value float64) (Params, error) {
	switch name {
	case "m1":
		p.M1 = value
	case "m2":
		p.M2 = value
	case "k1":
		p.K1 = value
	case "k2":
		p.K2 = value
	case "b1":
		p.B1 = value
	case "b2":
		p.B2 = value
	default:
		return p, fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	return p, nil
}

func (p Params) Map() map[string]float64 {
	return map[string]float64{
		"m1": p.M1, "m2": p.M2,
		"k1": p.K1, "k2": p.K2,
		"b1": p.B1, "b2": p.B2,
	}
}

// InitialConditions holds the starting displacement of each mass. Both
// masses start at rest.
type InitialConditions struct {
	X1 float64 `yaml:"x1" json:"x1"`
	X2 float64 `yaml:"x2" json:"x2"`
}

// State returns the initial state in [v1, v2, x1, x2] order.
func (ic InitialConditions) State() dynamo.State {
	x := make(dynamo.State, StateDim)
	x[IdxX1] = ic.X1
	x[IdxX2] = ic.X2
	return x
}

// Accel1 is v1' for the given positions and velocities. The x2 term is
// scaled by k2/m2 rather than k2/m1.
func (p Params) Accel1(x1, x2, v1, v2 float64) float64 {
	return x1*-(p.K1+p.K2)/p.M1 + x2*p.K2/p.M2 + v1*-(p.B1+p.B2)/p.M1 + v2*p.B2/p.M1
}

// Accel2 is v2' for the given positions, velocities and input force.
func (p Params) Accel2(x1, x2, v1, v2, u float64) float64 {
	return x1*p.K2/p.M2 + x2*-p.K2/p.M2 + v1*p.B2/p.M2 + v2*-p.B2/p.M2 + u/p.M2
}

// StateMatrix builds A of x' = Ax + Bu for the state [v1, v2, x1, x2].
func (p Params) StateMatrix() matrix.Matrix {
	a := matrix.Zeros(StateDim)

	a[IdxV1][IdxV1] = -(p.B1 + p.B2) / p.M1
	a[IdxV1][IdxV2] = p.B2 / p.M1
	a[IdxV1][IdxX1] = -(p.K1 + p.K2) / p.M1
	a[IdxV1][IdxX2] = p.K2 / p.M2

	a[IdxV2][IdxV1] = p.B2 / p.M2
	a[IdxV2][IdxV2] = -p.B2 / p.M2
	a[IdxV2][IdxX1] = p.K2 / p.M2
	a[IdxV2][IdxX2] = -p.K2 / p.M2

	a[IdxX1][IdxV1] = 1
	a[IdxX2][IdxV2] = 1
	return a
}

// InputGain is the B vector: the force acts on the second mass only.
func (p Params) InputGain() dynamo.State {
	b := make(dynamo.State, StateDim)
	b[IdxV2] = 1 / p.M2
	return b
}

// QuarterCar is the dynamo.System form of the two-mass network.
type QuarterCar struct {
	Params Params
}

func NewQuarterCar(p Params) *QuarterCar {
	return &QuarterCar{Params: p}
}

func (q *QuarterCar) StateDim() int   { return StateDim }
func (q *QuarterCar) ControlDim() int { return 1 }

func (q *QuarterCar) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	force := 0.0
	if len(u) > 0 {
		force = u[0]
	}

	p := q.Params
	dx := make(dynamo.State, StateDim)
	dx[IdxV1] = p.Accel1(x[IdxX1], x[IdxX2], x[IdxV1], x[IdxV2])
	dx[IdxV2] = p.Accel2(x[IdxX1], x[IdxX2], x[IdxV1], x[IdxV2], force)
	dx[IdxX1] = x[IdxV1]
	dx[IdxX2] = x[IdxV2]
	return dx
}
