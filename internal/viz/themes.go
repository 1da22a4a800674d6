package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the player
type Theme struct {
	Name   string
	Path   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
}

var Themes = []Theme{
	{
		Name:   "plotly",
		Path:   lipgloss.Color("#3366ff"),
		Accent: lipgloss.Color("#ff4444"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888899"),
		Border: lipgloss.Color("#444466"),
	},
	{
		Name:   "retro",
		Path:   lipgloss.Color("#00ff00"), // Green phosphor
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Border: lipgloss.Color("#003300"),
	},
	{
		Name:   "ocean",
		Path:   lipgloss.Color("#00a8cc"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Border: lipgloss.Color("#0077be"),
	},
	{
		Name:   "sunset",
		Path:   lipgloss.Color("#feca57"),
		Accent: lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Border: lipgloss.Color("#2d1b2e"),
	},
}

// ThemeByName returns the named theme, falling back to the first one.
func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

type styles struct {
	canvas, panel, header, label, value, active, muted, graph lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Path).Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(44),
		header: lipgloss.NewStyle().Foreground(t.Text).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		graph:  lipgloss.NewStyle().Foreground(t.Path).Padding(1, 0),
	}
}
