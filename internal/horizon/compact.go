package horizon

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-logr/logr"

	"github.com/san-kum/horizon/internal/dynamo"
)

// ErrInvalidMass is returned for non-positive or non-finite masses.
var ErrInvalidMass = fmt.Errorf("compact body mass must be positive and finite: %w", dynamo.ErrParameterBounds)

// CompactBody is a non-rotating (Schwarzschild) black hole. All radii are
// derived from the mass and recomputed whenever it changes.
type CompactBody struct {
	Name string

	position mgl64.Vec3
	mass     float64
	radius   float64
	log      logr.Logger
}

type Option func(*CompactBody)

func WithLogger(l logr.Logger) Option {
	return func(cb *CompactBody) { cb.log = l }
}

func New(name string, position mgl64.Vec3, mass float64, opts ...Option) (*CompactBody, error) {
	cb := &CompactBody{
		Name:     name,
		position: position,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(cb)
	}
	if err := validMass(mass); err != nil {
		return nil, err
	}
	cb.mass = mass
	cb.updateRadius()

	cb.log.Info("compact body created", "name", cb.Name, "mass", cb.mass, "horizonRadius", cb.radius)
	return cb, nil
}

func validMass(m float64) error {
	if !(m > 0) || math.IsInf(m, 0) {
		return fmt.Errorf("mass %g: %w", m, ErrInvalidMass)
	}
	return nil
}

func (cb *CompactBody) Position() mgl64.Vec3     { return cb.position }
func (cb *CompactBody) SetPosition(p mgl64.Vec3) { cb.position = p }
func (cb *CompactBody) Mass() float64            { return cb.mass }

// SetMass changes the mass and recomputes every derived radius. The body is
// left untouched if m is not a positive finite number.
func (cb *CompactBody) SetMass(m float64) error {
	if err := validMass(m); err != nil {
		return err
	}
	cb.mass = m
	cb.updateRadius()
	cb.log.V(1).Info("compact body mass updated", "name", cb.Name, "mass", m, "horizonRadius", cb.radius)
	return nil
}

func (cb *CompactBody) updateRadius() {
	cb.radius = 2 * G * cb.mass / (C * C)
}

// HorizonRadius is the Schwarzschild radius 2Gm/c².
func (cb *CompactBody) HorizonRadius() float64      { return cb.radius }
func (cb *CompactBody) PhotonSphereRadius() float64 { return 1.5 * cb.radius }
func (cb *CompactBody) ISCORadius() float64         { return 3 * cb.radius }

// ClampRadius is the distance below which gravity is smoothed (0.1 r_h).
func (cb *CompactBody) ClampRadius() float64 { return ClampFraction * cb.radius }

func (cb *CompactBody) distance(point mgl64.Vec3) float64 {
	return point.Sub(cb.position).Len()
}

func (cb *CompactBody) IsInsideHorizon(point mgl64.Vec3) bool {
	return cb.distance(point) <= cb.radius
}

func (cb *CompactBody) IsInsidePhotonSphere(point mgl64.Vec3) bool {
	return cb.distance(point) <= cb.PhotonSphereRadius()
}

// GravitationalAcceleration returns the Newtonian pull at point, directed at
// the body. Points closer than the clamp radius get the zero vector.
func (cb *CompactBody) GravitationalAcceleration(point mgl64.Vec3) mgl64.Vec3 {
	rVec := point.Sub(cb.position)
	r := rVec.Len()
	if r < cb.ClampRadius() || r == 0 {
		return mgl64.Vec3{}
	}
	magnitude := G * cb.mass / (r * r)
	return rVec.Mul(-magnitude / r)
}

// GravitationalPotential returns -Gm/r with r floored at the clamp radius.
func (cb *CompactBody) GravitationalPotential(point mgl64.Vec3) float64 {
	r := math.Max(cb.distance(point), cb.ClampRadius())
	return -G * cb.mass / r
}

// MetricCoefficient is g_tt = 1 - r_h/r outside the horizon and 0 at or
// inside it.
func (cb *CompactBody) MetricCoefficient(r float64) float64 {
	if r <= cb.radius {
		return 0
	}
	return 1 - cb.radius/r
}

// TimeDilationFactor is dτ/dt for a static observer at radius r.
func (cb *CompactBody) TimeDilationFactor(r float64) float64 {
	gtt := cb.MetricCoefficient(r)
	if gtt <= 0 {
		return 0
	}
	return math.Sqrt(gtt)
}

// EmbeddingHeight is the depth of Flamm's paraboloid, 2·sqrt(r_h(r-r_h)),
// used by grid renderers. Points at or inside the horizon sit at height 0.
func (cb *CompactBody) EmbeddingHeight(point mgl64.Vec3) float64 {
	r := cb.distance(point)
	if r <= cb.radius {
		return 0
	}
	return 2 * math.Sqrt(cb.radius*(r-cb.radius))
}

// HawkingTemperature returns ħc³ / (8πGmk_B) in kelvin.
func (cb *CompactBody) HawkingTemperature() float64 {
	return (Hbar * C * C * C) / (8 * math.Pi * G * cb.mass * KB)
}

// BekensteinHawkingEntropy returns k_B c³ A / (4ħG) in J/K, A being the
// horizon area.
func (cb *CompactBody) BekensteinHawkingEntropy() float64 {
	area := 4 * math.Pi * cb.radius * cb.radius
	return (KB * C * C * C * area) / (4 * Hbar * G)
}

func (cb *CompactBody) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compact body: %s\n", cb.Name)
	fmt.Fprintf(&b, "Mass: %.4g kg (%.4g solar masses)\n", cb.mass, cb.mass/SolarMass)
	fmt.Fprintf(&b, "Horizon radius: %.4g m\n", cb.radius)
	fmt.Fprintf(&b, "Photon sphere: %.4g m\n", cb.PhotonSphereRadius())
	fmt.Fprintf(&b, "ISCO: %.4g m\n", cb.ISCORadius())
	fmt.Fprintf(&b, "Hawking temperature: %.4g K\n", cb.HawkingTemperature())
	fmt.Fprintf(&b, "Entropy: %.4g J/K", cb.BekensteinHawkingEntropy())
	return b.String()
}
