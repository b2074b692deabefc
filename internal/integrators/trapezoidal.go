package integrators

import (
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

const TrapezoidalName = "trapezoidal"

// Trapezoidal advances the four states with the trapezoidal rule applied to
// derivatives evaluated at the two previous instants. Positions use the two
// previous velocities, so they lag the velocity update by one step; the
// ordering is kept so results stay comparable sample for sample.
type Trapezoidal struct{}

func NewTrapezoidal() *Trapezoidal {
	return &Trapezoidal{}
}

func (tr *Trapezoidal) Name() string { return TrapezoidalName }

type quad struct {
	x1, x2, v1, v2 float64
}

func (tr *Trapezoidal) Solve(p physics.Params, ic physics.InitialConditions, f signal.Forcing, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := validate(p, f, cfg); err != nil {
		return nil, wrap(TrapezoidalName, err)
	}

	dt := cfg.Dt
	n := dynamo.Steps(dt, cfg.Duration)
	result := dynamo.NewResult(TrapezoidalName, n)

	start := quad{x1: ic.X1, x2: ic.X2}
	cur, prev, prePrev := start, start, start

	for i := 1; i <= n; i++ {
		t := float64(i) * dt
		u := f.Value(t)
		uPrev := f.Value(t - dt)

		cur.x1 += 0.5 * (prev.v1 + prePrev.v1) * dt
		cur.x2 += 0.5 * (prev.v2 + prePrev.v2) * dt
		cur.v1 += 0.5 * (p.Accel1(prev.x1, prev.x2, prev.v1, prev.v2) +
			p.Accel1(prePrev.x1, prePrev.x2, prePrev.v1, prePrev.v2)) * dt
		cur.v2 += 0.5 * (p.Accel2(prev.x1, prev.x2, prev.v1, prev.v2, u) +
			p.Accel2(prePrev.x1, prePrev.x2, prePrev.v1, prePrev.v2, uPrev)) * dt

		prePrev, prev = prev, cur

		if err := checkSample(TrapezoidalName, cfg, i, t, dynamo.State{cur.v1, cur.v2, cur.x1, cur.x2}); err != nil {
			return result, err
		}
		result.Append(t, cur.x1, cur.x2, u)
	}

	return result, nil
}
