package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Horizon lipgloss.Color
	Photon  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeAccretion = Theme{
		Name:    "accretion",
		Primary: lipgloss.Color("#ffaa33"),
		Accent:  lipgloss.Color("#ff5500"),
		Text:    lipgloss.Color("#fff2e0"),
		Muted:   lipgloss.Color("#6b5a4a"),
		Horizon: lipgloss.Color("#3a3a3a"),
		Photon:  lipgloss.Color("#ffd27f"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // Green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Horizon: lipgloss.Color("#003300"),
		Photon:  lipgloss.Color("#00cc00"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Horizon: lipgloss.Color("#444444"),
		Photon:  lipgloss.Color("#cccccc"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	CurrentTheme = ThemeAccretion

	Themes = []Theme{
		ThemeAccretion,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeAccretion
}

// SetTheme changes the current theme and restyles the panel.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	applyTheme(CurrentTheme)
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			SetTheme(Themes[(i+1)%len(Themes)].Name)
			return
		}
	}
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
