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

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Halves splits a second-order state into its position and velocity blocks.
// The returned slices alias s.
func (s State) Halves() (pos, vel State, err error) {
	if len(s)%2 != 0 {
		return nil, nil, fmt.Errorf("state of length %d: %w", len(s), ErrDimensionMismatch)
	}
	half := len(s) / 2
	return s[:half], s[half:], nil
}

// System is a first-order ODE. Second-order systems pack positions in the
// first half of the state and velocities in the second half.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Name() string
	Step(dyn System, x State, t float64, dt float64) State
}
