// Package dynamo provides the numerical primitives shared by the simulation
// packages.
//
// The package defines the small vocabulary every integration scheme speaks:
//
//   - [State]: packed state vector, positions first then velocities
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepping scheme over a [System]
//
// Concrete schemes live in the integrators package; the N-body system that
// feeds them lives in the nbody package.
//
// # Example
//
//	var sys dynamo.System = ...
//	integ := integrators.NewRK4()
//	next := integ.Step(sys, x, t, dt)
//
// # Thread Safety
//
// Integrators keep scratch buffers between calls and are NOT thread-safe.
// Use one instance per simulation.
package dynamo
