package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

// DefaultConfig is a 10 ms step over a 20 s horizon.
func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      20.0,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	return nil
}

// gridSlack absorbs the rounding in Duration/Dt so that an exact multiple
// such as 5/0.1 does not gain a spurious sample.
const gridSlack = 1e-9

// Steps returns the number of samples emitted for a run: ceil(T/dt) - 1.
// The sample at t=0 is never emitted and the last sample lies strictly
// before the horizon.
func Steps(dt, duration float64) int {
	if dt <= 0 || duration <= 0 {
		return 0
	}
	n := int(math.Ceil(duration/dt-gridSlack)) - 1
	if n < 0 {
		return 0
	}
	return n
}

// TimeGrid returns the uniform sample instants dt, 2dt, ... shared by every
// integration method. Instants are computed by multiplication so the grid
// does not accumulate rounding error.
func TimeGrid(dt, duration float64) []float64 {
	n := Steps(dt, duration)
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i+1) * dt
	}
	return times
}

type Result struct {
	Method     string
	Times      []float64
	X1         []float64
	X2         []float64
	Signal     []float64
	Metrics    map[string]float64
	StepsTaken int
}

// NewResult preallocates sample slices for n steps.
func NewResult(method string, n int) *Result {
	return &Result{
		Method:  method,
		Times:   make([]float64, 0, n),
		X1:      make([]float64, 0, n),
		X2:      make([]float64, 0, n),
		Signal:  make([]float64, 0, n),
		Metrics: make(map[string]float64),
	}
}

func (r *Result) Append(t, x1, x2, u float64) {
	r.Times = append(r.Times, t)
	r.X1 = append(r.X1, x1)
	r.X2 = append(r.X2, x2)
	r.Signal = append(r.Signal, u)
	r.StepsTaken++
}

func (r *Result) Len() int { return len(r.Times) }
