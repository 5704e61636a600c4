// Package nbody steps a bounded collection of bodies around a single
// compact body.
//
// A Simulation holds at most MaxBodies bodies. Each call to Step runs one
// frame: pairwise and central forces are accumulated, the selected scheme
// computes the next kinematic state, touching bodies are resolved by
// absorption, bodies that crossed the horizon (or were absorbed) are removed,
// and every survivor is advanced exactly once. Steps are synchronous and
// the Simulation is not safe for concurrent use.
//
// Observers registered with WithObserver receive a Frame after each step;
// a Frame owns its data and may be kept across steps.
package nbody
