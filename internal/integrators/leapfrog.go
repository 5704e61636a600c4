package integrators

import "github.com/san-kum/horizon/internal/dynamo"

// Leapfrog is the kick-drift-kick form of the second-order symplectic
// scheme. The state must be packed as [positions | velocities]; the
// derivative of the velocity block is taken as the acceleration.
type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	pos, vel, err := x.Halves()
	if err != nil {
		return x.Clone()
	}
	half := len(pos)

	if len(l.scratch) != len(x) {
		l.scratch = make(dynamo.State, len(x))
	}

	result := make(dynamo.State, len(x))
	dx := dyn.Derive(x, t)
	halfDt := dt * 0.5

	// kick
	for i := 0; i < half; i++ {
		l.scratch[half+i] = vel[i] + dx[half+i]*halfDt
	}

	// drift
	for i := 0; i < half; i++ {
		result[i] = pos[i] + l.scratch[half+i]*dt
		l.scratch[i] = result[i]
	}

	dxNew := dyn.Derive(l.scratch, t+dt)

	// kick
	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfDt
	}

	return result
}
