package storage

import "github.com/san-kum/horizon/internal/nbody"

// TrajectoryPoint is one body at one recorded step.
type TrajectoryPoint struct {
	Step     int        `json:"step"`
	Time     float64    `json:"time"`
	Body     string     `json:"body"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Active   bool       `json:"active"`
}

// EnergySample is the system energy at one recorded step.
type EnergySample struct {
	Step      int     `json:"step"`
	Time      float64 `json:"time"`
	Kinetic   float64 `json:"kinetic"`
	Potential float64 `json:"potential"`
	Total     float64 `json:"total"`
}

// Recorder keeps every Nth frame it observes. It satisfies nbody.Observer.
type Recorder struct {
	every      int
	seen       int
	Trajectory []TrajectoryPoint
	Energy     []EnergySample
}

// NewRecorder keeps one frame in every. Values below 1 keep every frame.
func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{every: every}
}

func (r *Recorder) OnStep(f nbody.Frame) {
	r.seen++
	if (r.seen-1)%r.every != 0 {
		return
	}
	r.Record(f)
}

// Record stores f unconditionally.
func (r *Recorder) Record(f nbody.Frame) {
	for _, b := range f.Bodies {
		r.Trajectory = append(r.Trajectory, TrajectoryPoint{
			Step:     f.Step,
			Time:     f.Time,
			Body:     b.Name,
			Position: b.Position,
			Velocity: b.Velocity,
			Active:   b.Active,
		})
	}
	r.Energy = append(r.Energy, EnergySample{
		Step:      f.Step,
		Time:      f.Time,
		Kinetic:   f.Kinetic,
		Potential: f.Potential,
		Total:     f.TotalEnergy(),
	})
}

// Totals returns the recorded total energies in order.
func (r *Recorder) Totals() []float64 {
	out := make([]float64, len(r.Energy))
	for i, e := range r.Energy {
		out[i] = e.Total
	}
	return out
}

func (r *Recorder) Reset() {
	r.seen = 0
	r.Trajectory = r.Trajectory[:0]
	r.Energy = r.Energy[:0]
}
