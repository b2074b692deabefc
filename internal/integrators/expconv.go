package integrators

import (
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/matrix"
	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

const ExpConvName = "expconv"

// ExpConv computes the response through the state-transition matrix
// Φ(t) = e^(At), approximated by a truncated series at every sample time.
//
// The forced part is the convolution ∫Φ(τ)B dτ·u(t): the kernel integral is
// accumulated with the trapezoid rule while the input is sampled once per
// step, which is exact only for piecewise-constant forcing. The free part
// Φ(t)·x0 carries the initial displacements.
//
// Cost is O(n·k·s³) for n samples, k series terms and s=4, far above
// Trapezoidal for the same output. Large ‖A·t‖ also exceeds what a fixed
// order series can represent; with ValidateState such runs fail with
// dynamo.ErrUnstable once samples overflow.
type ExpConv struct {
	Terms int
}

func NewExpConv() *ExpConv {
	return &ExpConv{Terms: matrix.DefaultTerms}
}

func (e *ExpConv) Name() string { return ExpConvName }

func (e *ExpConv) Solve(p physics.Params, ic physics.InitialConditions, f signal.Forcing, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := validate(p, f, cfg); err != nil {
		return nil, wrap(ExpConvName, err)
	}

	dt := cfg.Dt
	n := dynamo.Steps(dt, cfg.Duration)
	result := dynamo.NewResult(ExpConvName, n)

	a := p.StateMatrix()
	gain := p.InputGain()[physics.IdxV2]
	x0 := ic.State()

	// sum holds dt·Σ Φ(j·dt) for j = 0..i-1; Φ(0) = I.
	sum := matrix.Scale(matrix.Identity(physics.StateDim), dt)

	for i := 1; i <= n; i++ {
		t := float64(i) * dt

		phi, err := matrix.Exp(matrix.Scale(a, t), e.Terms)
		if err != nil {
			return result, wrap(ExpConvName, err)
		}
		next, err := matrix.Add(sum, matrix.Scale(phi, dt))
		if err != nil {
			return result, wrap(ExpConvName, err)
		}
		kernel, err := matrix.Add(next, sum)
		if err != nil {
			return result, wrap(ExpConvName, err)
		}
		kernel = matrix.Scale(kernel, 0.5)
		sum = next

		u := f.Value(t)
		x := make(dynamo.State, physics.StateDim)
		for r := range x {
			x[r] = kernel[r][physics.IdxV2] * gain * u
			for c, v := range x0 {
				x[r] += phi[r][c] * v
			}
		}

		if err := checkSample(ExpConvName, cfg, i, t, x); err != nil {
			return result, err
		}
		result.Append(t, x[physics.IdxX1], x[physics.IdxX2], u)
	}

	return result, nil
}
