package nbody

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/horizon/internal/body"
)

var zeroVec mgl64.Vec3

// AccumulateForces runs one pairwise pass and one central pass, adding
// the results to each active body's force buffer. Step calls it when
// gravity is enabled.
func (s *Simulation) AccumulateForces() {
	s.accumulatePairForces()
	s.accumulateCentralForces()
}

// accumulatePairForces applies equal and opposite Newtonian forces to every
// unordered pair of active bodies. Coincident pairs are skipped.
func (s *Simulation) accumulatePairForces() {
	for i, a := range s.bodies {
		if !a.Active() {
			continue
		}
		for _, b := range s.bodies[i+1:] {
			if !b.Active() {
				continue
			}
			d := b.Position().Sub(a.Position())
			r := d.Len()
			if !(r > 0) {
				continue
			}
			magnitude := s.g * a.Mass() * b.Mass() / (r * r)
			f := d.Mul(magnitude / r)
			a.ApplyForce(f)
			b.ApplyForce(f.Mul(-1))
		}
	}
}

// accumulateCentralForces pulls every active body toward the compact body.
// Bodies at or within the clamp radius receive nothing.
func (s *Simulation) accumulateCentralForces() {
	for _, b := range s.bodies {
		if !b.Active() {
			continue
		}
		if f, ok := s.centralPull(b.Position(), b.Mass()); ok {
			b.ApplyForce(f)
		}
	}
}

// centralPull is G·M·m/r² toward the compact body, or false inside the
// clamp radius.
func (s *Simulation) centralPull(p mgl64.Vec3, m float64) (mgl64.Vec3, bool) {
	d := s.central.Position().Sub(p)
	r := d.Len()
	if r <= s.central.ClampRadius() || !(r > 0) {
		return zeroVec, false
	}
	magnitude := s.g * s.central.Mass() * m / (r * r)
	return d.Mul(magnitude / r), true
}

// gravityAt is the acceleration on bodies[self] when the bodies sit at
// positions. Inactive bodies exert nothing.
func (s *Simulation) gravityAt(self int, bodies []*body.Body, positions []mgl64.Vec3) mgl64.Vec3 {
	p := positions[self]
	acc, _ := s.centralPull(p, 1)
	for j, other := range bodies {
		if j == self || !other.Active() {
			continue
		}
		d := positions[j].Sub(p)
		r := d.Len()
		if !(r > 0) {
			continue
		}
		acc = acc.Add(d.Mul(s.g * other.Mass() / (r * r * r)))
	}
	return acc
}

// Acceleration returns the instantaneous gravitational acceleration on the
// body at index i, using the same skip and clamp rules as Step. It does not
// touch any force buffer. Out-of-range indices yield the zero vector.
func (s *Simulation) Acceleration(i int) mgl64.Vec3 {
	if i < 0 || i >= len(s.bodies) {
		return zeroVec
	}
	positions := make([]mgl64.Vec3, len(s.bodies))
	for j, b := range s.bodies {
		positions[j] = b.Position()
	}
	return s.gravityAt(i, s.bodies, positions)
}
