package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/horizon/internal/storage"
)

var palette = []string{"#ffaa33", "#ff5555", "#55aaff", "#88ff88", "#ff88ff", "#ffff55", "#55ffff", "#cccccc"}

// bounds starts at the zero box, so the origin is always in view.
type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) include(x, y float64) {
	b.minX, b.maxX = math.Min(b.minX, x), math.Max(b.maxX, x)
	b.minY, b.maxY = math.Min(b.minY, y), math.Max(b.maxY, y)
}

// pad grows the box by 10% per side and keeps it square so orbits are not
// distorted.
func (b *bounds) pad() {
	side := math.Max(b.maxX-b.minX, b.maxY-b.minY)
	if side == 0 {
		side = 1
	}
	side *= 1.2
	cx, cy := (b.minX+b.maxX)/2, (b.minY+b.maxY)/2
	b.minX, b.maxX = cx-side/2, cx+side/2
	b.minY, b.maxY = cy-side/2, cy+side/2
}

// TrajectorySVG draws every body's path projected onto the X-Z orbital
// plane, one coloured polyline per body, with the compact body marked at
// the origin. Bodies are coloured in order of first appearance.
func TrajectorySVG(points []storage.TrajectoryPoint, size int) string {
	if len(points) == 0 || size <= 0 {
		return ""
	}

	var order []string
	paths := make(map[string][][2]float64)
	b := bounds{}
	for _, p := range points {
		if _, ok := paths[p.Body]; !ok {
			order = append(order, p.Body)
		}
		x, y := p.Position[0], p.Position[2]
		paths[p.Body] = append(paths[p.Body], [2]float64{x, y})
		b.include(x, y)
	}
	b.pad()

	scale := float64(size) / (b.maxX - b.minX)
	toScreen := func(x, y float64) (float64, float64) {
		return (x - b.minX) * scale, float64(size) - (y-b.minY)*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	ox, oy := toScreen(0, 0)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="#3a3a3a" stroke="#ffd27f"/>
`, ox, oy))

	for i, name := range order {
		color := palette[i%len(palette)]
		pts := paths[name]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, p := range pts {
			x, y := toScreen(p[0], p[1])
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
		last := pts[len(pts)-1]
		x, y := toScreen(last[0], last[1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, x, y, color, name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
