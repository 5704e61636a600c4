package metrics

import "github.com/san-kum/horizon/internal/nbody"

// Momentum reports the magnitude of the total body momentum in the latest
// frame. The compact body is fixed, so this is not conserved.
type Momentum struct {
	name  string
	value float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string          { return m.name }
func (m *Momentum) Observe(f nbody.Frame) { m.value = f.Momentum().Len() }
func (m *Momentum) Value() float64        { return m.value }
func (m *Momentum) Reset()                { m.value = 0 }

// Losses counts bodies absorbed by collisions or swallowed by the horizon.
type Losses struct {
	name  string
	value int
}

func NewLosses() *Losses {
	return &Losses{name: "bodies_lost"}
}

func (l *Losses) Name() string          { return l.name }
func (l *Losses) Observe(f nbody.Frame) { l.value = f.Absorbed + f.Swallowed }
func (l *Losses) Value() float64        { return float64(l.value) }
func (l *Losses) Reset()                { l.value = 0 }
