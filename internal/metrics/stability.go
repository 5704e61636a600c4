package metrics

import (
	"math"

	"github.com/san-kum/horizon/internal/nbody"
)

// Stability is the fraction of frames in which every active body is finite
// and within threshold of the compact body.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f nbody.Frame) {
	s.samples++
	for _, b := range f.Bodies {
		if !b.Active {
			continue
		}
		r := b.Position.Sub(f.Central.Position).Len()
		if math.IsNaN(r) || math.IsInf(r, 0) || r > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
