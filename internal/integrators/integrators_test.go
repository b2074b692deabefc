package integrators_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/integrators"
	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

func unitParams() physics.Params {
	return physics.Params{M1: 1, M2: 1, K1: 1, K2: 1, B1: 1, B2: 1}
}

func unitStep() signal.Forcing {
	return signal.Forcing{Kind: signal.Step, Amplitude: 1, Omega: signal.DefaultOmega}
}

func cfg(dt, duration float64) dynamo.Config {
	return dynamo.Config{Dt: dt, Duration: duration, ValidateState: true}
}

func maxAbsDiff(a, b []float64) float64 {
	Expect(a).To(HaveLen(len(b)))
	d := make([]float64, len(a))
	floats.SubTo(d, a, b)
	return math.Max(floats.Max(d), -floats.Min(d))
}

var allMethods = []integrators.Method{
	integrators.NewTrapezoidal(),
	integrators.NewExpConv(),
	integrators.NewRK4(),
}

var _ = Describe("every method", func() {
	for _, m := range allMethods {
		m := m

		Context(m.Name(), func() {
			It("keeps the unforced system at rest", func() {
				f := signal.Forcing{Kind: signal.Sine, Amplitude: 0}
				res, err := m.Solve(unitParams(), physics.InitialConditions{}, f, cfg(0.1, 5))
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Len()).To(Equal(49))
				for i := range res.X1 {
					Expect(res.X1[i]).To(BeZero())
					Expect(res.X2[i]).To(BeZero())
				}
			})

			It("samples the shared grid starting at dt", func() {
				res, err := m.Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.1, 5))
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Method).To(Equal(m.Name()))
				Expect(res.Times).To(Equal(dynamo.TimeGrid(0.1, 5)))
				Expect(res.X1).To(HaveLen(49))
				Expect(res.X2).To(HaveLen(49))
				Expect(res.Signal).To(HaveLen(49))
				Expect(res.StepsTaken).To(Equal(49))
			})

			It("is deterministic", func() {
				f := signal.Forcing{Kind: signal.Square, Amplitude: 3}
				a, err := m.Solve(unitParams(), physics.InitialConditions{X1: 0.2}, f, cfg(0.05, 3))
				Expect(err).NotTo(HaveOccurred())
				b, err := m.Solve(unitParams(), physics.InitialConditions{X1: 0.2}, f, cfg(0.05, 3))
				Expect(err).NotTo(HaveOccurred())
				Expect(a).To(Equal(b))
			})

			It("rejects a zero mass", func() {
				p := unitParams()
				p.M2 = 0
				_, err := m.Solve(p, physics.InitialConditions{}, unitStep(), cfg(0.1, 1))
				Expect(err).To(MatchError(dynamo.ErrDivisionByZero))
			})

			It("rejects an unknown waveform", func() {
				f := signal.Forcing{Kind: signal.Kind(9), Amplitude: 1}
				_, err := m.Solve(unitParams(), physics.InitialConditions{}, f, cfg(0.1, 1))
				Expect(err).To(MatchError(dynamo.ErrUnsupportedWaveform))
			})

			It("rejects a non-positive step", func() {
				_, err := m.Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0, 1))
				Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
			})
		})
	}
})

var _ = Describe("Trapezoidal", func() {
	var tr *integrators.Trapezoidal

	BeforeEach(func() {
		tr = integrators.NewTrapezoidal()
	})

	It("produces 49 non-negative x1 samples for the unit system", func() {
		res, err := tr.Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.1, 5))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X1).To(HaveLen(49))
		for _, x := range res.X1 {
			Expect(x).To(BeNumerically(">=", 0))
		}
		Expect(res.X1[len(res.X1)-1]).To(BeNumerically(">", 0))
	})

	It("settles at the static deflection under constant forcing", func() {
		res, err := tr.Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.01, 40))
		Expect(err).NotTo(HaveOccurred())
		last := res.Len() - 1
		Expect(res.X1[last]).To(BeNumerically("~", 1.0, 0.01))
		Expect(res.X2[last]).To(BeNumerically("~", 2.0, 0.01))
	})

	It("reproduces the lagged position update", func() {
		res, err := tr.Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.1, 0.5))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Len()).To(Equal(4))
		// positions trail the velocity update by one step
		Expect(res.X1[0]).To(BeZero())
		Expect(res.X1[1]).To(BeZero())
		Expect(res.X2[0]).To(BeZero())
		Expect(res.X2[1]).To(BeNumerically("~", 0.005, 1e-15))
	})

	It("records the forcing signal of a square wave", func() {
		f := signal.Forcing{Kind: signal.Square, Amplitude: 800, Omega: signal.DefaultOmega}
		res, err := tr.Solve(unitParams(), physics.InitialConditions{}, f, cfg(0.1, 20))
		Expect(err).NotTo(HaveOccurred())
		for _, u := range res.Signal {
			Expect(u).To(Or(Equal(0.0), Equal(1600.0)))
		}
		Expect(res.Signal[5]).To(Equal(1600.0))  // t=0.6
		Expect(res.Signal[25]).To(Equal(0.0))    // t=2.6
		Expect(res.Signal[45]).To(Equal(1600.0)) // t=4.6
	})

	It("flags a diverging run", func() {
		p := physics.Params{M1: 1, M2: 1, K1: 1e300, K2: 1, B1: 1, B2: 1}
		res, err := tr.Solve(p, physics.InitialConditions{X1: 1}, unitStep(), cfg(0.01, 1))
		Expect(err).To(MatchError(dynamo.ErrUnstable))

		var simErr *dynamo.SimulationError
		Expect(err).To(BeAssignableToTypeOf(simErr))
		Expect(res.Len()).To(BeNumerically("<", dynamo.Steps(0.01, 1)))
	})

	It("lets a diverging run finish when validation is off", func() {
		p := physics.Params{M1: 1, M2: 1, K1: 1e300, K2: 1, B1: 1, B2: 1}
		c := cfg(0.01, 1)
		c.ValidateState = false
		res, err := tr.Solve(p, physics.InitialConditions{X1: 1}, unitStep(), c)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Len()).To(Equal(dynamo.Steps(0.01, 1)))
	})
})

var _ = Describe("ExpConv", func() {
	It("matches the RK4 reference under constant forcing", func() {
		exp, err := integrators.NewExpConv().Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.01, 2))
		Expect(err).NotTo(HaveOccurred())
		ref, err := integrators.NewRK4().Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.01, 2))
		Expect(err).NotTo(HaveOccurred())

		Expect(maxAbsDiff(exp.X1, ref.X1)).To(BeNumerically("<", 5e-3))
		Expect(maxAbsDiff(exp.X2, ref.X2)).To(BeNumerically("<", 5e-3))
	})

	It("agrees with the trapezoidal integrator", func() {
		exp, err := integrators.NewExpConv().Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.01, 2))
		Expect(err).NotTo(HaveOccurred())
		tr, err := integrators.NewTrapezoidal().Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.01, 2))
		Expect(err).NotTo(HaveOccurred())

		Expect(maxAbsDiff(exp.X1, tr.X1)).To(BeNumerically("<", 1e-2))
		Expect(maxAbsDiff(exp.X2, tr.X2)).To(BeNumerically("<", 1e-2))
	})

	It("carries initial displacements through the free response", func() {
		ic := physics.InitialConditions{X1: 0.5}
		rest := signal.Forcing{Kind: signal.Step, Amplitude: 0}
		exp, err := integrators.NewExpConv().Solve(unitParams(), ic, rest, cfg(0.01, 2))
		Expect(err).NotTo(HaveOccurred())
		ref, err := integrators.NewRK4().Solve(unitParams(), ic, rest, cfg(0.01, 2))
		Expect(err).NotTo(HaveOccurred())

		Expect(exp.X1[0]).To(BeNumerically("~", 0.5, 1e-3))
		Expect(maxAbsDiff(exp.X1, ref.X1)).To(BeNumerically("<", 2e-2))
		Expect(maxAbsDiff(exp.X2, ref.X2)).To(BeNumerically("<", 2e-2))
	})

	It("overflows into an unstable error for huge coefficients", func() {
		p := physics.Params{M1: 1, M2: 1, K1: 1e300, K2: 1, B1: 1, B2: 1}
		_, err := integrators.NewExpConv().Solve(p, physics.InitialConditions{}, unitStep(), cfg(0.1, 1))
		Expect(err).To(MatchError(dynamo.ErrUnstable))
	})
})

var _ = Describe("RK4", func() {
	It("settles at the static deflection", func() {
		res, err := integrators.NewRK4().Solve(unitParams(), physics.InitialConditions{}, unitStep(), cfg(0.01, 40))
		Expect(err).NotTo(HaveOccurred())
		last := res.Len() - 1
		Expect(res.X1[last]).To(BeNumerically("~", 1.0, 0.01))
		Expect(res.X2[last]).To(BeNumerically("~", 2.0, 0.01))
	})
})
