package term

import "github.com/charmbracelet/lipgloss"

// Theme is the terminal palette the canvas blends particles onto.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:       "night",
		Background: lipgloss.Color("#0a0a12"),
		Accent:     lipgloss.Color("#00acc1"),
		Muted:      lipgloss.Color("#555566"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: lipgloss.Color("#001a33"),
		Accent:     lipgloss.Color("#00a8cc"),
		Muted:      lipgloss.Color("#4488aa"),
		Warning:    lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Background: lipgloss.Color("#2d1b2e"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Warning:    lipgloss.Color("#ffc048"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Background: lipgloss.Color("#001100"),
		Accent:     lipgloss.Color("#88ff88"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Background: lipgloss.Color("#000000"),
		Accent:     lipgloss.Color("#0088ff"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{
		ThemeNight,
		ThemeOcean,
		ThemeSunset,
		ThemeRetro,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to night.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
