// Package dynamo provides core simulation primitives for ordinary
// differential equation (ODE) systems.
//
// The package defines the fundamental interfaces and types used by the
// integrators and solve strategies:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: single-step numerical scheme
//   - [AdaptiveIntegrator]: scheme with an embedded error estimate
//   - [Grid]: immutable, ordered sequence of output sample instants
//   - [Result]: sampled trajectory plus solver statistics
//
// # Example
//
//	grid := dynamo.Linspace(0, 200, 500)
//	res, err := sim.NewAdaptive(sim.DefaultAdaptiveConfig()).Integrate(sys, x0, grid)
//
// # Errors
//
// Failures are reported through the sentinel errors in this package; callers
// match them with [errors.Is]. Invalid model inputs are reported as
// [*ParameterError], which unwraps to [ErrInvalidParameter].
package dynamo
