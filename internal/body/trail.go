package body

import "github.com/go-gl/mathgl/mgl64"

// Trail is a fixed-capacity ring of recent positions. Once full, each push
// evicts the oldest entry.
type Trail struct {
	points []mgl64.Vec3
	start  int
	size   int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{points: make([]mgl64.Vec3, capacity)}
}

func (t *Trail) Push(p mgl64.Vec3) {
	if t.size < len(t.points) {
		t.points[(t.start+t.size)%len(t.points)] = p
		t.size++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % len(t.points)
}

func (t *Trail) Len() int { return t.size }
func (t *Trail) Cap() int { return len(t.points) }

// Points returns the stored positions, oldest first.
func (t *Trail) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, t.size)
	for i := 0; i < t.size; i++ {
		out[i] = t.points[(t.start+i)%len(t.points)]
	}
	return out
}

// Last returns the newest position.
func (t *Trail) Last() (mgl64.Vec3, bool) {
	if t.size == 0 {
		return mgl64.Vec3{}, false
	}
	return t.points[(t.start+t.size-1)%len(t.points)], true
}

func (t *Trail) Reset() {
	t.start, t.size = 0, 0
}
