package integrators

import (
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

const RK4Name = "rk4"

// RK4 is a classic fourth-order Runge-Kutta reference. The forcing is
// evaluated at each stage time.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return RK4Name }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

// Step advances x by dt with the control computed by ctrl at each stage.
func (r *RK4) Step(dyn dynamo.System, x dynamo.State, ctrl func(float64) dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, dyn.Derive(x, ctrl(t), t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, dyn.Derive(r.scratch, ctrl(t+dt*0.5), t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, dyn.Derive(r.scratch, ctrl(t+dt*0.5), t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, dyn.Derive(r.scratch, ctrl(t+dt), t+dt))

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}

func (r *RK4) Solve(p physics.Params, ic physics.InitialConditions, f signal.Forcing, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := validate(p, f, cfg); err != nil {
		return nil, wrap(RK4Name, err)
	}

	dt := cfg.Dt
	n := dynamo.Steps(dt, cfg.Duration)
	result := dynamo.NewResult(RK4Name, n)

	dyn := physics.NewQuarterCar(p)
	ctrl := func(t float64) dynamo.Control { return dynamo.Control{f.Value(t)} }

	x := ic.State()
	for i := 1; i <= n; i++ {
		t := float64(i) * dt
		x = r.Step(dyn, x, ctrl, t-dt, dt)

		if err := checkSample(RK4Name, cfg, i, t, x); err != nil {
			return result, err
		}
		result.Append(t, x[physics.IdxX1], x[physics.IdxX2], f.Value(t))
	}

	return result, nil
}
