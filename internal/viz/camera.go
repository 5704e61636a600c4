package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/horizon/internal/nbody"
)

// Camera is an orthographic view centred on the compact body. With zero
// yaw and pitch it looks down the +Y axis onto the X-Z orbital plane.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	// Extent is the world distance shown from the centre to the nearest
	// canvas edge at zoom 1.
	Extent float64
	Center mgl64.Vec3
}

func NewCamera(extent float64) *Camera {
	return &Camera{Zoom: 1, Extent: extent}
}

func (c *Camera) RotateYaw(a float64) { c.Yaw += a }
func (c *Camera) RotatePitch(a float64) {
	c.Pitch = mgl64.Clamp(c.Pitch+a, -math.Pi/2, math.Pi/2)
}
func (c *Camera) ZoomIn()  { c.Zoom = math.Min(1000, c.Zoom*1.25) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.01, c.Zoom/1.25) }

// Fit sets the extent so every body in f is on screen, and no closer than
// a few ISCO radii.
func (c *Camera) Fit(f nbody.Frame) {
	extent := 4 * f.Central.ISCORadius
	for _, b := range f.Bodies {
		extent = math.Max(extent, 1.2*b.Position.Sub(f.Central.Position).Len())
	}
	c.Extent = extent
	c.Center = f.Central.Position
	c.Zoom = 1
}

func (c *Camera) scale(sw, sh int) float64 {
	if !(c.Extent > 0) {
		return 0
	}
	half := float64(min(sw, sh)) / 2
	return half * c.Zoom / c.Extent
}

// Project maps a world point onto a sw x sh sub-pixel canvas and reports
// whether it lands inside.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, bool) {
	rel := p.Sub(c.Center)
	q := mgl64.Rotate3DX(-c.Pitch).Mul3(mgl64.Rotate3DY(c.Yaw)).Mul3x1(rel)
	s := c.scale(sw, sh)
	x := sw/2 + int(math.Round(q.X()*s))
	y := sh/2 + int(math.Round(q.Z()*s))
	return x, y, x >= 0 && x < sw && y >= 0 && y < sh
}

// Length converts a world length to sub-pixels.
func (c *Camera) Length(l float64, sw, sh int) int {
	return int(math.Round(l * c.scale(sw, sh)))
}
