package nbody

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/san-kum/horizon/internal/body"
	"github.com/san-kum/horizon/internal/dynamo"
	"github.com/san-kum/horizon/internal/horizon"
	"github.com/san-kum/horizon/internal/integrators"
)

// MaxBodies is the capacity of a Simulation. It matches the 16 slots of the
// renderer's uniform block.
const MaxBodies = 16

// DefaultTimeStep is one frame at 60 Hz.
const DefaultTimeStep = 0.016666

// ErrCapacity is reported by Add once MaxBodies bodies are held.
var ErrCapacity = fmt.Errorf("simulation holds %d bodies: %w", MaxBodies, dynamo.ErrCapacity)

var ErrNilBody = fmt.Errorf("nil body: %w", dynamo.ErrInvalidState)

const progressInterval = 3600

// Observer is notified with a fresh Frame after every completed step.
type Observer interface {
	OnStep(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (fn ObserverFunc) OnStep(f Frame) { fn(f) }

type Simulation struct {
	central *horizon.CompactBody
	bodies  []*body.Body

	gravity    bool
	method     Method
	integrator dynamo.Integrator
	g          float64
	timeStep   float64

	elapsed   float64
	steps     int
	absorbed  int
	swallowed int

	// next kinematic state per body, filled by the higher-order schemes
	// and consumed when bodies are advanced.
	pending map[*body.Body]kinematics

	observers []Observer
	log       logr.Logger
}

type Option func(*Simulation)

func WithGravity(enabled bool) Option {
	return func(s *Simulation) { s.gravity = enabled }
}

func WithMethod(m Method) Option {
	return func(s *Simulation) { s.method = m }
}

// WithGravitationalConstant overrides G for body-body and central forces.
// Non-positive values are ignored.
func WithGravitationalConstant(g float64) Option {
	return func(s *Simulation) {
		if g > 0 {
			s.g = g
		}
	}
}

// WithTimeStep sets the step used by Tick. Non-positive values are ignored.
func WithTimeStep(dt float64) Option {
	return func(s *Simulation) {
		if dt > 0 {
			s.timeStep = dt
		}
	}
}

func WithLogger(l logr.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

func WithObserver(o Observer) Option {
	return func(s *Simulation) { s.observers = append(s.observers, o) }
}

// New creates an empty simulation around central. Gravity starts disabled
// and the fourth-order scheme is selected unless overridden.
func New(central *horizon.CompactBody, opts ...Option) *Simulation {
	s := &Simulation{
		central:  central,
		bodies:   make([]*body.Body, 0, MaxBodies),
		method:   FourthOrder,
		g:        horizon.G,
		timeStep: DefaultTimeStep,
		pending:  make(map[*body.Body]kinematics, MaxBodies),
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.method = s.method.normalize()
	s.integrator = newIntegrator(s.method)

	s.log.Info("simulation initialized",
		"central", central.Name,
		"gravity", s.gravity,
		"method", s.method.String())
	return s
}

func newIntegrator(m Method) dynamo.Integrator {
	in, err := integrators.Get(m.String())
	if err != nil {
		// every Method name is registered
		panic(err)
	}
	return in
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Add appends b. At capacity the collection is left unchanged and a
// *dynamo.SimulationError wrapping ErrCapacity is returned; a nil body is
// rejected the same way with ErrNilBody.
func (s *Simulation) Add(b *body.Body) error {
	if b == nil {
		s.log.Info("cannot add body: nil")
		return &dynamo.SimulationError{Step: s.steps, Time: s.elapsed, Wrapped: ErrNilBody}
	}
	if len(s.bodies) >= MaxBodies {
		s.log.Info("cannot add body: capacity reached", "name", b.Name, "max", MaxBodies)
		return &dynamo.SimulationError{Step: s.steps, Time: s.elapsed, Wrapped: ErrCapacity}
	}
	s.bodies = append(s.bodies, b)
	s.log.Info("body added", "name", b.Name, "count", len(s.bodies))
	return nil
}

// Remove deletes the body at index i. Out-of-range indices are a no-op.
func (s *Simulation) Remove(i int) bool {
	if i < 0 || i >= len(s.bodies) {
		return false
	}
	name := s.bodies[i].Name
	s.removeAt(i)
	s.log.Info("body removed", "name", name)
	return true
}

func (s *Simulation) removeAt(i int) {
	delete(s.pending, s.bodies[i])
	copy(s.bodies[i:], s.bodies[i+1:])
	s.bodies[len(s.bodies)-1] = nil
	s.bodies = s.bodies[:len(s.bodies)-1]
}

func (s *Simulation) Clear() {
	n := len(s.bodies)
	clear(s.bodies)
	s.bodies = s.bodies[:0]
	clear(s.pending)
	s.log.Info("bodies cleared", "count", n)
}

// Reset zeroes the clock and counters and brings every body to rest.
// Positions are kept.
func (s *Simulation) Reset() {
	s.elapsed = 0
	s.steps = 0
	s.absorbed = 0
	s.swallowed = 0
	for _, b := range s.bodies {
		b.SetVelocity(zeroVec)
		b.ResetForce()
	}
	clear(s.pending)
	s.log.Info("simulation reset")
}

// Step advances the simulation by dt. dt <= 0 (or NaN) leaves all state
// unchanged.
func (s *Simulation) Step(dt float64) {
	if !(dt > 0) {
		return
	}
	s.elapsed += dt
	s.steps++

	if s.gravity {
		s.AccumulateForces()
		s.integrate(dt)
		s.resolveCollisions()
	}
	s.cull()
	s.advance(dt)

	if s.steps%progressInterval == 0 {
		s.log.V(1).Info("progress", "steps", s.steps, "elapsed", s.elapsed, "bodies", len(s.bodies))
	}
	s.notify()
}

// Tick steps by the configured time step.
func (s *Simulation) Tick() { s.Step(s.timeStep) }

func (s *Simulation) advance(dt float64) {
	for _, b := range s.bodies {
		if next, ok := s.pending[b]; ok {
			b.AdvanceTo(next.position, next.velocity)
			continue
		}
		b.Advance(dt)
	}
	clear(s.pending)
}

func (s *Simulation) notify() {
	if len(s.observers) == 0 {
		return
	}
	f := s.Frame()
	for _, o := range s.observers {
		o.OnStep(f)
	}
}

func (s *Simulation) Central() *horizon.CompactBody { return s.central }

// Bodies returns the current collection. The slice is a copy; the bodies are
// not and must not be retained across steps.
func (s *Simulation) Bodies() []*body.Body {
	out := make([]*body.Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *Simulation) Body(i int) (*body.Body, bool) {
	if i < 0 || i >= len(s.bodies) {
		return nil, false
	}
	return s.bodies[i], true
}

func (s *Simulation) Len() int                       { return len(s.bodies) }
func (s *Simulation) Elapsed() float64               { return s.elapsed }
func (s *Simulation) Steps() int                     { return s.steps }
func (s *Simulation) GravityEnabled() bool           { return s.gravity }
func (s *Simulation) Method() Method                 { return s.method }
func (s *Simulation) GravitationalConstant() float64 { return s.g }
func (s *Simulation) TimeStep() float64              { return s.timeStep }

// Absorbed counts bodies lost to collisions since the last reset.
func (s *Simulation) Absorbed() int { return s.absorbed }

// Swallowed counts bodies that crossed the horizon since the last reset.
func (s *Simulation) Swallowed() int { return s.swallowed }

func (s *Simulation) SetGravity(enabled bool) {
	s.gravity = enabled
	s.log.Info("gravity toggled", "enabled", enabled)
}

func (s *Simulation) ToggleGravity() { s.SetGravity(!s.gravity) }

func (s *Simulation) SetMethod(m Method) {
	m = m.normalize()
	s.method = m
	s.integrator = newIntegrator(m)
	s.log.Info("integration method selected", "method", m.String())
}
