package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the live view chrome. Grid cells always use the ecosystem
// palette.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeSavanna = Theme{
		Name:      "savanna",
		Primary:   lipgloss.Color("#e0a526"),
		Secondary: lipgloss.Color("#b5651d"),
		Accent:    lipgloss.Color("#ffe39f"),
		Border:    lipgloss.Color("#6b4a1f"),
		Text:      lipgloss.Color("#fff4dc"),
		Muted:     lipgloss.Color("#8c7a5b"),
	}

	ThemeReef = Theme{
		Name:      "reef",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#ff00ff"),
		Accent:    lipgloss.Color("#ffff00"),
		Border:    lipgloss.Color("#444466"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
	}

	ThemeTundra = Theme{
		Name:      "tundra",
		Primary:   lipgloss.Color("#e0f0ff"),
		Secondary: lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Border:    lipgloss.Color("#4488aa"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Border:    lipgloss.Color("#005500"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Border:    lipgloss.Color("#888888"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
	}

	Themes = []Theme{
		ThemeSavanna,
		ThemeReef,
		ThemeTundra,
		ThemePhosphor,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
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

func (t Theme) header() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1)
}

func (t Theme) panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}

func (t Theme) text() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Text) }

func (t Theme) accent() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}
