package body

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/horizon/internal/horizon"
)

// DefaultHistorySize is the number of trail positions kept per body.
const DefaultHistorySize = 100

// Body is one orbiting entity. Kinematic state is only changed by Advance
// or AdvanceTo; the force buffer accumulates between those calls.
type Body struct {
	Name  string
	Kind  Kind
	Color mgl64.Vec4

	position     mgl64.Vec3
	velocity     mgl64.Vec3
	acceleration mgl64.Vec3
	force        mgl64.Vec3
	mass         float64
	radius       float64
	active       bool
	trail        *Trail
}

// New creates an active body. Negative mass or radius are clamped to zero;
// a zero mass makes the body a massless tracer.
func New(name string, kind Kind, position, velocity mgl64.Vec3, mass, radius float64) *Body {
	return NewWithHistory(name, kind, position, velocity, mass, radius, DefaultHistorySize)
}

func NewWithHistory(name string, kind Kind, position, velocity mgl64.Vec3, mass, radius float64, history int) *Body {
	b := &Body{
		Name:     name,
		Kind:     kind,
		Color:    kind.DefaultColor(),
		position: position,
		velocity: velocity,
		mass:     math.Max(mass, 0),
		radius:   math.Max(radius, 0),
		active:   true,
		trail:    NewTrail(history),
	}
	b.trail.Push(position)
	return b
}

// FromSlices builds a planetary body from loosely shaped configuration
// values. Position and velocity need three components and color three or
// four; anything shorter falls back to zero vectors and opaque white.
func FromSlices(position, velocity []float64, mass, radius float64, color []float64, name string) *Body {
	var pos, vel mgl64.Vec3
	if len(position) >= 3 {
		pos = mgl64.Vec3{position[0], position[1], position[2]}
	}
	if len(velocity) >= 3 {
		vel = mgl64.Vec3{velocity[0], velocity[1], velocity[2]}
	}

	b := New(name, Planetary, pos, vel, mass, radius)
	switch {
	case len(color) >= 4:
		b.Color = mgl64.Vec4{color[0], color[1], color[2], color[3]}
	case len(color) == 3:
		b.Color = mgl64.Vec4{color[0], color[1], color[2], 1}
	default:
		b.Color = mgl64.Vec4{1, 1, 1, 1}
	}
	return b
}

func (b *Body) Position() mgl64.Vec3     { return b.position }
func (b *Body) Velocity() mgl64.Vec3     { return b.velocity }
func (b *Body) Acceleration() mgl64.Vec3 { return b.acceleration }
func (b *Body) Force() mgl64.Vec3        { return b.force }
func (b *Body) Mass() float64            { return b.mass }
func (b *Body) Radius() float64          { return b.radius }
func (b *Body) Active() bool             { return b.active }
func (b *Body) IsMassless() bool         { return b.mass <= 0 }
func (b *Body) Trail() *Trail            { return b.trail }

func (b *Body) SetPosition(p mgl64.Vec3) { b.position = p }
func (b *Body) SetVelocity(v mgl64.Vec3) { b.velocity = v }
func (b *Body) SetActive(active bool)    { b.active = active }

// SetHistory replaces the trail with an empty one of the given capacity,
// seeded with the current position.
func (b *Body) SetHistory(capacity int) {
	b.trail = NewTrail(capacity)
	b.trail.Push(b.position)
}

// ApplyForce adds f to the force buffer. Calls within a step superpose.
func (b *Body) ApplyForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

func (b *Body) ResetForce() {
	b.force = mgl64.Vec3{}
}

func (b *Body) updateAcceleration() {
	if b.mass > 0 {
		b.acceleration = b.force.Mul(1 / b.mass)
	} else {
		b.acceleration = mgl64.Vec3{}
	}
}

// Advance integrates one explicit first-order step from the accumulated
// force: v += a·dt, then x += v·dt. The new position is recorded and the
// force buffer cleared. Inactive bodies and non-positive dt are ignored.
func (b *Body) Advance(dt float64) {
	if !b.active || !(dt > 0) {
		return
	}
	b.updateAcceleration()
	b.velocity = b.velocity.Add(b.acceleration.Mul(dt))
	b.position = b.position.Add(b.velocity.Mul(dt))
	b.commit()
}

// AdvanceTo commits a kinematic state computed by a higher-order scheme.
// Bookkeeping matches Advance: acceleration reflects the accumulated force,
// the position is recorded and the force buffer cleared. Massless bodies
// keep their velocity.
func (b *Body) AdvanceTo(position, velocity mgl64.Vec3) {
	if !b.active {
		return
	}
	b.updateAcceleration()
	if !b.IsMassless() {
		b.velocity = velocity
	}
	b.position = position
	b.commit()
}

func (b *Body) commit() {
	b.trail.Push(b.position)
	b.ResetForce()
}

func (b *Body) DistanceTo(other *Body) float64 {
	return other.position.Sub(b.position).Len()
}

// IsCollidingWith reports whether both bodies are active and their spheres
// touch or overlap.
func (b *Body) IsCollidingWith(other *Body) bool {
	if !b.active || !other.active {
		return false
	}
	return b.DistanceTo(other) <= b.radius+other.radius
}

func (b *Body) KineticEnergy() float64 {
	if b.mass <= 0 {
		return 0
	}
	return 0.5 * b.mass * b.velocity.Dot(b.velocity)
}

func (b *Body) Momentum() mgl64.Vec3 {
	return b.velocity.Mul(b.mass)
}

func orbitalSpeed(g, centralMass, r float64) float64 {
	if r <= 0 || centralMass <= 0 {
		return 0
	}
	return math.Sqrt(g * centralMass / r)
}

// CircularOrbitVelocity returns sqrt(GM/r) with r measured from the origin.
func (b *Body) CircularOrbitVelocity(centralMass float64) float64 {
	return orbitalSpeed(horizon.G, centralMass, b.position.Len())
}

// SetCircularOrbit sets a circular-orbit velocity around a mass at
// centralPosition, perpendicular to both the radial direction and the +Y
// axis (or +X when the radial direction is nearly parallel to +Y). The
// speed uses gravitational constant g; non-positive g means horizon.G.
func (b *Body) SetCircularOrbit(g, centralMass float64, centralPosition mgl64.Vec3) {
	if !(g > 0) {
		g = horizon.G
	}
	displacement := b.position.Sub(centralPosition)
	r := displacement.Len()
	if r <= 0 || centralMass <= 0 {
		b.velocity = mgl64.Vec3{}
		return
	}

	radial := displacement.Mul(1 / r)
	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(radial.Dot(up)) > 0.99 {
		up = mgl64.Vec3{1, 0, 0}
	}
	direction := radial.Cross(up).Normalize()
	b.velocity = direction.Mul(orbitalSpeed(g, centralMass, r))
}

func (b *Body) String() string {
	return fmt.Sprintf("%s (%s, %.4g kg)", b.Name, b.Kind, b.mass)
}

// Info renders a multi-line summary in astronomical display units.
func (b *Body) Info() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Object: %s\n", b.Name)
	fmt.Fprintf(&sb, "Type: %s\n", b.Kind)
	fmt.Fprintf(&sb, "Position: (%.2f, %.2f, %.2f) Gm\n", b.position.X()/1e9, b.position.Y()/1e9, b.position.Z()/1e9)
	fmt.Fprintf(&sb, "Velocity: (%.2f, %.2f, %.2f) km/s\n", b.velocity.X()/1e3, b.velocity.Y()/1e3, b.velocity.Z()/1e3)
	fmt.Fprintf(&sb, "Mass: %.2f solar masses\n", b.mass/horizon.SolarMass)
	fmt.Fprintf(&sb, "Radius: %.2f Gm\n", b.radius/1e9)
	fmt.Fprintf(&sb, "Kinetic Energy: %.2f x 10^30 J\n", b.KineticEnergy()/1e30)
	active := "No"
	if b.active {
		active = "Yes"
	}
	fmt.Fprintf(&sb, "Active: %s", active)
	return sb.String()
}
