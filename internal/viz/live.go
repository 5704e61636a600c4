package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/horizon/internal/nbody"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	maxStepsPerTick = 4096
	listedBodies    = 8
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live view of one simulation. The simulation advances by its
// configured time step, stepsPerTick times per 60 Hz tick.
type Model struct {
	sim           *nbody.Simulation
	title         string
	canvas        *Canvas
	camera        *Camera
	frame         nbody.Frame
	running       bool
	showHelp      bool
	stepsPerTick  int
	energyHistory []float64
	kinetic       []float64
}

func NewModel(sim *nbody.Simulation, title string) Model {
	m := Model{
		sim:           sim,
		title:         title,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(1),
		frame:         sim.Frame(),
		running:       true,
		stepsPerTick:  1,
		energyHistory: make([]float64, 0, historyCapacity),
		kinetic:       make([]float64, 0, historyCapacity),
	}
	m.camera.Fit(m.frame)
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.sim.HandleEvent(nbody.ToggleGravity)
		case "1":
			m.sim.HandleEvent(nbody.SelectFirstOrder)
		case "2":
			m.sim.HandleEvent(nbody.SelectLeapfrog)
		case "3":
			m.sim.HandleEvent(nbody.SelectFourthOrder)
		case " ":
			m.sim.HandleEvent(nbody.ResetSimulation)
			m.energyHistory = m.energyHistory[:0]
			m.kinetic = m.kinetic[:0]
		case "p":
			m.running = !m.running
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "left", "h":
			m.camera.RotateYaw(-0.1)
		case "right", "l":
			m.camera.RotateYaw(0.1)
		case "up", "k":
			m.camera.RotatePitch(0.1)
		case "down", "j":
			m.camera.RotatePitch(-0.1)
		case "[":
			m.stepsPerTick = max(1, m.stepsPerTick/2)
		case "]":
			m.stepsPerTick = min(maxStepsPerTick, m.stepsPerTick*2)
		case "f":
			m.camera.Fit(m.frame)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
		m.frame = m.sim.Frame()
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	for i := 0; i < m.stepsPerTick; i++ {
		m.sim.Tick()
	}
	m.frame = m.sim.Frame()

	m.energyHistory = appendBounded(m.energyHistory, m.frame.TotalEnergy())
	m.kinetic = appendBounded(m.kinetic, m.frame.Kinetic)
}

func appendBounded(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) draw() {
	m.canvas.Clear()
	sw, sh := m.canvas.SubWidth(), m.canvas.SubHeight()
	c := m.frame.Central

	cx, cy, _ := m.camera.Project(c.Position, sw, sh)
	m.canvas.DrawCircle(cx, cy, m.camera.Length(c.ISCORadius, sw, sh), true, CurrentTheme.Muted)
	m.canvas.DrawCircle(cx, cy, m.camera.Length(c.PhotonSphereRadius, sw, sh), false, CurrentTheme.Photon)
	m.canvas.FillDisc(cx, cy, m.camera.Length(c.HorizonRadius, sw, sh), CurrentTheme.Horizon)

	for _, b := range m.sim.Bodies() {
		trailColor := colorOf(dimmed(b.Color, 0.5))
		for _, p := range b.Trail().Points() {
			if x, y, ok := m.camera.Project(p, sw, sh); ok {
				m.canvas.Plot(x, y, trailColor)
			}
		}
	}
	for _, b := range m.frame.Bodies {
		x, y, ok := m.camera.Project(b.Position, sw, sh)
		if !ok {
			continue
		}
		r := max(1, m.camera.Length(b.Radius, sw, sh))
		m.canvas.FillDisc(x, y, r, colorOf(b.Color))
	}
}

func onOff(on bool) string {
	if on {
		return statusOn.Render("ON")
	}
	return statusOff.Render("OFF")
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())
	f := m.frame

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	status := statusOn.Render("RUNNING")
	if !m.running {
		status = statusOff.Render("PAUSED")
	}
	s.WriteString(fmt.Sprintf("%s  x%d\n\n", status, m.stepsPerTick))

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Gravity", onOff(f.Gravity))
	row("Method", fmt.Sprintf("%s (order %d)", f.Method, f.Method.Order()))
	row("Time", formatSimTime(f.Time))
	row("Steps", fmt.Sprintf("%d", f.Step))
	row("Bodies", fmt.Sprintf("%d/%d  lost %d", len(f.Bodies), nbody.MaxBodies, f.Absorbed+f.Swallowed))
	row("Horizon", fmt.Sprintf("%.3f Gm", f.Central.HorizonRadius/1e9))
	row("Kinetic", fmt.Sprintf("%.3e J", f.Kinetic))
	row("Potential", fmt.Sprintf("%.3e J", f.Potential))
	row("Total", fmt.Sprintf("%.3e J", f.TotalEnergy()))

	if len(m.energyHistory) > 1 {
		chart := OffsetChart(m.energyHistory, 30, 4, "Total energy")
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(labelStyle.Render("KE") + SparklineChart(m.kinetic, 30) + "\n")
	}

	s.WriteString("\n" + Separator(36) + "\n")
	for i, b := range f.Bodies {
		if i == listedBodies {
			s.WriteString(subtleStyle.Render(fmt.Sprintf("  … %d more", len(f.Bodies)-listedBodies)) + "\n")
			break
		}
		dot := lipgloss.NewStyle().Foreground(colorOf(b.Color)).Render("●")
		dist := b.Position.Sub(f.Central.Position).Len() / 1e9
		s.WriteString(fmt.Sprintf("%s %-14s %8.1f Gm %9.1f km/s\n", dot, truncate(b.Name, 14), dist, b.Velocity.Len()/1e3))
	}

	s.WriteString(helpStyle.Render("G:Gravity 1/2/3:Method SP:Reset\nP:Pause +/-:Zoom [ ]:Speed ?:Help Q:Quit"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  G        - Toggle gravity           ║
║  1        - First-order integration  ║
║  2        - Leapfrog integration     ║
║  3        - Fourth-order integration ║
║  Space    - Reset simulation         ║
║  P        - Pause/Resume             ║
║  + / -    - Zoom in / out            ║
║  Arrows   - Rotate view              ║
║  [ / ]    - Fewer / more steps       ║
║  F        - Fit view to bodies       ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func formatSimTime(seconds float64) string {
	switch {
	case seconds < 120:
		return fmt.Sprintf("%.2fs", seconds)
	case seconds < 2*86400:
		return fmt.Sprintf("%.2fh", seconds/3600)
	default:
		return fmt.Sprintf("%.1fd", seconds/86400)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RunLive runs the live view until the user quits.
func RunLive(sim *nbody.Simulation, title string) error {
	_, err := tea.NewProgram(NewModel(sim, title), tea.WithAltScreen()).Run()
	return err
}

