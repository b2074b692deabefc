package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrUnstable indicates the simulation produced a NaN or Inf sample.
	ErrUnstable = errors.New("dynamo: simulation unstable (non-finite sample)")

	// ErrDivisionByZero indicates a zero (or near-zero) mass denominator.
	ErrDivisionByZero = errors.New("dynamo: division by zero mass")

	// ErrUnsupportedWaveform indicates an unrecognized forcing waveform.
	ErrUnsupportedWaveform = errors.New("dynamo: unsupported waveform")

	// ErrUnknownMethod indicates an unrecognized integration method name.
	ErrUnknownMethod = errors.New("dynamo: unknown integration method")

	// ErrInvalidConfig indicates a non-positive step size or horizon.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrInvalidInput indicates user text that is not a finite number.
	ErrInvalidInput = errors.New("dynamo: invalid numeric input")

	// ErrUnknownParam indicates a parameter name that does not exist.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Method  string
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%s: step %d (t=%.4f): %v", e.Method, e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
