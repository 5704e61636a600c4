package nbody

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/horizon/internal/body"
	"github.com/san-kum/horizon/internal/dynamo"
)

type kinematics struct {
	position mgl64.Vec3
	velocity mgl64.Vec3
}

// gravitySystem exposes the active bodies as a second-order system with
// state [x0 y0 z0 x1 ... | vx0 vy0 vz0 vx1 ...].
type gravitySystem struct {
	sim       *Simulation
	bodies    []*body.Body
	positions []mgl64.Vec3
}

func newGravitySystem(sim *Simulation, bodies []*body.Body) *gravitySystem {
	return &gravitySystem{
		sim:       sim,
		bodies:    bodies,
		positions: make([]mgl64.Vec3, len(bodies)),
	}
}

func (gs *gravitySystem) StateDim() int { return 6 * len(gs.bodies) }

func (gs *gravitySystem) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, len(x))
	pos, vel, err := x.Halves()
	n := len(gs.bodies)
	if err != nil || len(pos) != 3*n {
		return dx
	}

	for i := range gs.bodies {
		gs.positions[i] = mgl64.Vec3{pos[3*i], pos[3*i+1], pos[3*i+2]}
	}
	copy(dx[:3*n], vel)

	for i, b := range gs.bodies {
		if b.IsMassless() {
			continue
		}
		a := gs.sim.gravityAt(i, gs.bodies, gs.positions)
		dx[3*n+3*i] = a[0]
		dx[3*n+3*i+1] = a[1]
		dx[3*n+3*i+2] = a[2]
	}
	return dx
}

func packState(bodies []*body.Body) dynamo.State {
	n := len(bodies)
	x := make(dynamo.State, 6*n)
	for i, b := range bodies {
		p, v := b.Position(), b.Velocity()
		copy(x[3*i:3*i+3], p[:])
		copy(x[3*n+3*i:3*n+3*i+3], v[:])
	}
	return x
}

func (s *Simulation) activeBodies() []*body.Body {
	active := make([]*body.Body, 0, len(s.bodies))
	for _, b := range s.bodies {
		if b.Active() {
			active = append(active, b)
		}
	}
	return active
}

// integrate computes the next kinematic state of every active body with the
// selected higher-order scheme. The result is held until bodies are
// advanced; the first-order scheme needs nothing here since Body.Advance
// consumes the accumulated force directly.
func (s *Simulation) integrate(dt float64) {
	if s.method == FirstOrder {
		return
	}
	active := s.activeBodies()
	if len(active) == 0 {
		return
	}

	sys := newGravitySystem(s, active)
	next := s.integrator.Step(sys, packState(active), s.elapsed-dt, dt)
	if !next.IsValid() {
		err := &dynamo.SimulationError{Step: s.steps, Time: s.elapsed, Wrapped: dynamo.ErrInvalidState}
		s.log.Error(err, "integration produced non-finite state, using first-order update", "method", s.method.String())
		return
	}

	n := len(active)
	for i, b := range active {
		s.pending[b] = kinematics{
			position: mgl64.Vec3{next[3*i], next[3*i+1], next[3*i+2]},
			velocity: mgl64.Vec3{next[3*n+3*i], next[3*n+3*i+1], next[3*n+3*i+2]},
		}
	}
}
