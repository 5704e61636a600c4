package metrics

import "github.com/san-kum/horizon/internal/nbody"

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(f nbody.Frame)
	Value() float64
	Reset()
}

// Set fans a frame out to several metrics. It satisfies nbody.Observer.
type Set []Metric

func (s Set) OnStep(f nbody.Frame) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// Default is the metric set reported by headless runs.
func Default(escapeRadius float64) Set {
	return Set{
		NewEnergyDrift(),
		NewEnergy(),
		NewMomentum(),
		NewStability(escapeRadius),
		NewLosses(),
	}
}
