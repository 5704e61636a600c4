package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/san-kum/horizon/internal/config"
)

var presetInfo = map[string]string{
	"default":   "one star, one planet",
	"orbit":     "three circular orbits",
	"binary":    "equal-mass pair",
	"plunge":    "radial infall",
	"collision": "head-on merger",
}

const (
	stateMenu = iota
	stateSim
)

// menu picks a preset and then hands every message to the live Model.
type menu struct {
	state, cursor int
	presets       []string
	err           error
	log           logr.Logger
	live          Model
}

func newMenu(log logr.Logger) menu {
	return menu{state: stateMenu, presets: config.ListPresets(), log: log}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m menu) start() (menu, tea.Cmd) {
	name := m.presets[m.cursor]
	sim, err := config.GetPreset(name).Build(m.log)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.log.V(1).Info("starting preset", "preset", name, "bodies", sim.Len())
	m.state, m.err = stateSim, nil
	m.live = NewModel(sim, name)
	return m, m.live.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}
	var b strings.Builder
	b.WriteString("\n  " + headerStyle.Render("HORIZON") + "\n")
	for i, name := range m.presets {
		line := fmt.Sprintf("%-10s %s", name, subtleStyle.Render(presetInfo[name]))
		if i == m.cursor {
			b.WriteString("  " + selectedStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("    " + valueStyle.Render(line) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n  " + statusOff.Render(m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("  j/k select  enter start  q quit") + "\n")
	return b.String()
}

// RunMenu shows the preset picker and runs the chosen preset live.
func RunMenu(log logr.Logger) error {
	_, err := tea.NewProgram(newMenu(log), tea.WithAltScreen()).Run()
	return err
}
