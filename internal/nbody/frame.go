package nbody

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/horizon/internal/body"
)

// CentralSnapshot is the compact body as seen by a renderer.
type CentralSnapshot struct {
	Name               string
	Position           mgl64.Vec3
	Mass               float64
	HorizonRadius      float64
	PhotonSphereRadius float64
	ISCORadius         float64
}

type BodySnapshot struct {
	Name     string
	Kind     body.Kind
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Color    mgl64.Vec4
	Mass     float64
	Radius   float64
	Active   bool
}

// Frame is a self-contained copy of the simulation after a step.
type Frame struct {
	Step      int
	Time      float64
	Gravity   bool
	Method    Method
	Central   CentralSnapshot
	Bodies    []BodySnapshot
	Kinetic   float64
	Potential float64
	Absorbed  int
	Swallowed int
}

func (f Frame) TotalEnergy() float64 { return f.Kinetic + f.Potential }

// Momentum is the total linear momentum of the active bodies.
func (f Frame) Momentum() mgl64.Vec3 {
	var p mgl64.Vec3
	for _, b := range f.Bodies {
		if b.Active {
			p = p.Add(b.Velocity.Mul(b.Mass))
		}
	}
	return p
}

func (s *Simulation) Frame() Frame {
	c := s.central
	f := Frame{
		Step:    s.steps,
		Time:    s.elapsed,
		Gravity: s.gravity,
		Method:  s.method,
		Central: CentralSnapshot{
			Name:               c.Name,
			Position:           c.Position(),
			Mass:               c.Mass(),
			HorizonRadius:      c.HorizonRadius(),
			PhotonSphereRadius: c.PhotonSphereRadius(),
			ISCORadius:         c.ISCORadius(),
		},
		Bodies:    make([]BodySnapshot, len(s.bodies)),
		Kinetic:   s.KineticEnergy(),
		Potential: s.PotentialEnergy(),
		Absorbed:  s.absorbed,
		Swallowed: s.swallowed,
	}
	for i, b := range s.bodies {
		f.Bodies[i] = BodySnapshot{
			Name:     b.Name,
			Kind:     b.Kind,
			Position: b.Position(),
			Velocity: b.Velocity(),
			Color:    b.Color,
			Mass:     b.Mass(),
			Radius:   b.Radius(),
			Active:   b.Active(),
		}
	}
	return f
}

// UniformBlock mirrors the renderer's std140 object block: a count followed
// by MaxBodies position/radius, color and mass slots.
type UniformBlock struct {
	NumObjects int32
	PosRadius  [MaxBodies][4]float32
	Color      [MaxBodies][4]float32
	Mass       [MaxBodies]float32
}

// UniformBlock packs the frame's bodies into GPU-sized slots. Slots past
// NumObjects are zero.
func (f Frame) UniformBlock() UniformBlock {
	var u UniformBlock
	n := min(len(f.Bodies), MaxBodies)
	u.NumObjects = int32(n)
	for i, b := range f.Bodies[:n] {
		u.PosRadius[i] = [4]float32{float32(b.Position[0]), float32(b.Position[1]), float32(b.Position[2]), float32(b.Radius)}
		u.Color[i] = [4]float32{float32(b.Color[0]), float32(b.Color[1]), float32(b.Color[2]), float32(b.Color[3])}
		u.Mass[i] = float32(b.Mass)
	}
	return u
}
