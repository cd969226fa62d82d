package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the TUI
type Theme struct {
	Name        string
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Text        lipgloss.Color
	Susceptible lipgloss.Color
	Infected    lipgloss.Color
	Recovered   lipgloss.Color
	Start       lipgloss.Color
	End         lipgloss.Color
	Error       lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:        "classic",
		Primary:     lipgloss.Color("#00cccc"),
		Muted:       lipgloss.Color("#666688"),
		Text:        lipgloss.Color("#ffffff"),
		Susceptible: lipgloss.Color("#5f87ff"),
		Infected:    lipgloss.Color("#ff5f5f"),
		Recovered:   lipgloss.Color("#5fd75f"),
		Start:       lipgloss.Color("#ff0000"),
		End:         lipgloss.Color("#00ff00"),
		Error:       lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:        "retro",
		Primary:     lipgloss.Color("#00ff00"), // Green phosphor
		Muted:       lipgloss.Color("#005500"),
		Text:        lipgloss.Color("#00ff00"),
		Susceptible: lipgloss.Color("#88ff88"),
		Infected:    lipgloss.Color("#ffff00"),
		Recovered:   lipgloss.Color("#00cc00"),
		Start:       lipgloss.Color("#ff0000"),
		End:         lipgloss.Color("#88ff88"),
		Error:       lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:        "minimal",
		Primary:     lipgloss.Color("#ffffff"),
		Muted:       lipgloss.Color("#888888"),
		Text:        lipgloss.Color("#ffffff"),
		Susceptible: lipgloss.Color("#cccccc"),
		Infected:    lipgloss.Color("#0088ff"),
		Recovered:   lipgloss.Color("#888888"),
		Start:       lipgloss.Color("#ff0000"),
		End:         lipgloss.Color("#00ff00"),
		Error:       lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemeClassic

	Themes = []Theme{
		ThemeClassic,
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
	return ThemeClassic
}

// NextTheme switches CurrentTheme to the following entry of Themes.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
