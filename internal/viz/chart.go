package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

// OffsetChart plots values as offsets from the first sample. asciigraph
// cannot scale a flat series, and energies near 1e47 J lose every digit
// that changes, so a flat or non-finite series is reported as one line.
func OffsetChart(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	base := values[0]
	offsets := make([]float64, len(values))
	flat := true
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Sprintf("%s: non-finite sample at %d", caption, i)
		}
		offsets[i] = v - base
		if offsets[i] != 0 {
			flat = false
		}
	}
	if flat {
		return fmt.Sprintf("%s: constant at %.6e", caption, base)
	}
	return asciigraph.Plot(offsets,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s - %.6e", caption, base)),
	)
}
