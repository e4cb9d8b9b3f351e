package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the watch face and the panel title.
type Theme struct {
	Name   string
	Face   lipgloss.Color
	Accent lipgloss.Color
}

var Themes = []Theme{
	{Name: "night", Face: lipgloss.Color("#00ccff"), Accent: lipgloss.Color("#00ffff")},
	{Name: "retro", Face: lipgloss.Color("#00ff00"), Accent: lipgloss.Color("#88ff88")},
	{Name: "ember", Face: lipgloss.Color("#ff9f43"), Accent: lipgloss.Color("#ff6b6b")},
	{Name: "paper", Face: lipgloss.Color("#ffffff"), Accent: lipgloss.Color("#0088ff")},
}

// GetTheme returns the named theme, or the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func (t Theme) face() lipgloss.Style {
	return canvasStyle.Foreground(t.Face)
}

func (t Theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent).MarginBottom(1)
}
