// Package integrators computes displacement histories of the quarter-car
// model. Every method samples the same uniform grid (dynamo.TimeGrid) and
// returns a fresh dynamo.Result; none of them keeps state between runs.
package integrators

import (
	"fmt"

	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

// Method is one numerical strategy for the quarter-car response.
type Method interface {
	Name() string
	Solve(p physics.Params, ic physics.InitialConditions, f signal.Forcing, cfg dynamo.Config) (*dynamo.Result, error)
}

func validate(p physics.Params, f signal.Forcing, cfg dynamo.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	return p.Validate()
}

// checkSample enforces cfg.ValidateState on a freshly emitted sample.
func checkSample(method string, cfg dynamo.Config, step int, t float64, x dynamo.State) error {
	if cfg.ValidateState && !x.IsValid() {
		return &dynamo.SimulationError{Method: method, Step: step, Time: t, Wrapped: dynamo.ErrUnstable}
	}
	return nil
}

func wrap(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
