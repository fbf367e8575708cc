package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a named colour palette. ID is what the preference store keeps.
type Theme struct {
	ID   string
	Name string

	Text      lipgloss.Color
	Subtle    lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Border    lipgloss.Color
	Focus     lipgloss.Color
	Highlight lipgloss.Color
}

// DefaultID is used when no valid theme is stored.
const DefaultID = "catppuccin-mocha"

var themes = []Theme{
	{
		ID: "catppuccin-mocha", Name: "Catppuccin Mocha",
		Text: "#cdd6f4", Subtle: "#a6adc8", Accent: "#f5c2e7", Muted: "#6c7086",
		Error: "#f38ba8", Border: "#45475a", Focus: "#89b4fa", Highlight: "#f9e2af",
	},
	{
		ID: "catppuccin-latte", Name: "Catppuccin Latte",
		Text: "#4c4f69", Subtle: "#5c5f77", Accent: "#ea76cb", Muted: "#9ca0b0",
		Error: "#d20f39", Border: "#dce0e8", Focus: "#1e66f5", Highlight: "#df8e1d",
	},
	{
		ID: "dracula", Name: "Dracula",
		Text: "#f8f8f2", Subtle: "#6272a4", Accent: "#ff79c6", Muted: "#6272a4",
		Error: "#ff5555", Border: "#44475a", Focus: "#bd93f9", Highlight: "#f1fa8c",
	},
	{
		ID: "rosepine-moon", Name: "Rosé Pine Moon",
		Text: "#e0def4", Subtle: "#908caa", Accent: "#ebbcba", Muted: "#6e6a86",
		Error: "#eb6f92", Border: "#403d52", Focus: "#c4a7e7", Highlight: "#f6c177",
	},
	{
		ID: "solarized-light", Name: "Solarized Light",
		Text: "#657b83", Subtle: "#93a1a1", Accent: "#d33682", Muted: "#93a1a1",
		Error: "#dc322f", Border: "#eee8d5", Focus: "#268bd2", Highlight: "#b58900",
	},
}

// All returns every theme in cycle order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Get returns the theme with id, or the default.
func Get(id string) Theme {
	for _, t := range themes {
		if t.ID == id {
			return t
		}
	}
	return themes[0]
}

// Next cycles to the theme after id.
func Next(id string) Theme {
	for i, t := range themes {
		if t.ID == id {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// Styles are the lipgloss styles the views render with.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Ref       lipgloss.Style
	Text      lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
	Frame     lipgloss.Style
	Divider   lipgloss.Style
}

// Styles derives the view styles from the palette.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Ref:       lipgloss.NewStyle().Bold(true).Foreground(t.Focus),
		Text:      lipgloss.NewStyle().Foreground(t.Text),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(t.Highlight),
		Muted:     lipgloss.NewStyle().Foreground(t.Muted),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Status:    lipgloss.NewStyle().Foreground(t.Subtle),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Focus),
		Divider: lipgloss.NewStyle().Foreground(t.Border),
	}
}
