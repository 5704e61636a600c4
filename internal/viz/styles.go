package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	canvasStyle   lipgloss.Style
	statsStyle    lipgloss.Style
	headerStyle   lipgloss.Style
	labelStyle    lipgloss.Style
	valueStyle    lipgloss.Style
	graphStyle    lipgloss.Style
	helpStyle     lipgloss.Style
	statusOn      lipgloss.Style
	statusOff     lipgloss.Style
	selectedStyle lipgloss.Style
	subtleStyle   lipgloss.Style
)

func init() { applyTheme(CurrentTheme) }

func applyTheme(t Theme) {
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(48)
	headerStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(t.Muted).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text)
	graphStyle = lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0)
	helpStyle = lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1)
	statusOn = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	statusOff = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(t.Muted)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		result.WriteRune(chars[idx])
	}
	return result.String()
}

// Separator is a muted horizontal rule.
func Separator(width int) string {
	return subtleStyle.Render(strings.Repeat("─", width))
}

// colorOf converts an RGBA colour in [0,1] to a hex terminal colour. Alpha
// is ignored.
func colorOf(c mgl64.Vec4) lipgloss.Color {
	return lipgloss.Color("#" + hexByte(c[0]) + hexByte(c[1]) + hexByte(c[2]))
}

// dimmed scales the RGB channels of c.
func dimmed(c mgl64.Vec4, f float64) mgl64.Vec4 {
	return mgl64.Vec4{c[0] * f, c[1] * f, c[2] * f, c[3]}
}

func hexByte(v float64) string {
	n := int(math.Round(mgl64.Clamp(v, 0, 1) * 255))
	const hex = "0123456789abcdef"
	return string(hex[n/16]) + string(hex[n%16])
}
