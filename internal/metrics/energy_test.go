package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/horizon/internal/body"
	"github.com/san-kum/horizon/internal/horizon"
	"github.com/san-kum/horizon/internal/nbody"
)

func frame(kinetic, potential float64, bodies int) nbody.Frame {
	return nbody.Frame{
		Kinetic:   kinetic,
		Potential: potential,
		Bodies:    make([]nbody.BodySnapshot, bodies),
	}
}

func TestEnergyMean(t *testing.T) {
	m := NewEnergy()
	m.Observe(frame(1, -3, 1))
	m.Observe(frame(2, -6, 1))

	if got, want := m.Value(), -3.0; got != want {
		t.Errorf("Value() = %v, want %v", got, want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()
	m.Observe(frame(0, -100, 2))
	m.Observe(frame(5, -100, 2))
	m.Observe(frame(1, -100, 2))

	if got, want := m.Value(), 0.05; math.Abs(got-want) > 1e-12 {
		t.Errorf("Value() = %v, want %v", got, want)
	}
}

func TestEnergyDriftRebasesOnLoss(t *testing.T) {
	m := NewEnergyDrift()
	m.Observe(frame(0, -100, 2))
	m.Observe(frame(0, -50, 1))
	m.Observe(frame(0, -50, 1))

	if got := m.Value(); got != 0 {
		t.Errorf("Value() = %v, want 0 after losing a body", got)
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10)
	near := nbody.Frame{Bodies: []nbody.BodySnapshot{{Position: mgl64.Vec3{1, 0, 0}, Active: true}}}
	far := nbody.Frame{Bodies: []nbody.BodySnapshot{{Position: mgl64.Vec3{100, 0, 0}, Active: true}}}
	farInactive := nbody.Frame{Bodies: []nbody.BodySnapshot{{Position: mgl64.Vec3{100, 0, 0}}}}

	m.Observe(near)
	m.Observe(far)
	m.Observe(farInactive)
	m.Observe(near)

	if got, want := m.Value(), 0.75; got != want {
		t.Errorf("Value() = %v, want %v", got, want)
	}
}

func TestSetObservesSimulation(t *testing.T) {
	central, err := horizon.New("Sgr A*", mgl64.Vec3{}, horizon.SagittariusAStar)
	if err != nil {
		t.Fatal(err)
	}
	set := Default(1e13)
	sim := nbody.New(central, nbody.WithGravity(true), nbody.WithObserver(set))

	orbiter := body.New("orbiter", body.Planetary, mgl64.Vec3{4e11, 0, 0}, mgl64.Vec3{}, 1e24, 1e6)
	orbiter.SetCircularOrbit(sim.GravitationalConstant(), central.Mass(), central.Position())
	doomed := body.New("doomed", body.Debris, mgl64.Vec3{0, central.HorizonRadius() / 2, 0}, mgl64.Vec3{}, 1e20, 1)
	for _, b := range []*body.Body{orbiter, doomed} {
		if err := sim.Add(b); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 500; i++ {
		sim.Step(60)
	}

	values := set.Values()
	if got := values["bodies_lost"]; got != 1 {
		t.Errorf("bodies_lost = %v, want 1", got)
	}
	if got := values["energy_drift"]; got > 1e-6 {
		t.Errorf("energy_drift = %v, want < 1e-6 with fourth-order", got)
	}
	if got := values["stability"]; got != 1 {
		t.Errorf("stability = %v, want 1", got)
	}
	if got, want := values["momentum"], 1e24*orbiter.CircularOrbitVelocity(central.Mass()); math.Abs(got-want)/want > 1e-6 {
		t.Errorf("momentum = %v, want %v", got, want)
	}

	set.Reset()
	if got := set.Values()["bodies_lost"]; got != 0 {
		t.Errorf("bodies_lost after Reset() = %v, want 0", got)
	}
}
