// Package dynamo provides the core simulation primitives shared by the
// quarter-car integrators.
//
// The package defines the fundamental types and errors:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Config]: step size, horizon and validation policy of a run
//   - [Result]: the sample sequences a run hands back to the caller
//
// # Example
//
//	p := physics.DefaultParams()
//	f := signal.Forcing{Kind: signal.Step, Amplitude: 800, Omega: signal.DefaultOmega}
//	res, err := integrators.NewTrapezoidal().Solve(p, physics.InitialConditions{}, f, dynamo.DefaultConfig())
//
// # Thread Safety
//
// Every integration run is a pure, synchronous call. Nothing in this package
// holds mutable state across runs.
package dynamo
