package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colors and base styles shared by every panel widget.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Canvas    lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Selected lipgloss.Style
}

// DefaultTheme returns the panel theme bound to the given renderer.
// Tests pass a renderer with an ASCII color profile to get plain output.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"},
		Secondary: lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#F1C40F"},
		Highlight: lipgloss.AdaptiveColor{Light: "#0E7C86", Dark: "#4FD1C5"},
		Muted:     lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#4A4A4A", Dark: "#BDBDBD"},
		Border:    lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#3C3C3C"},
		Canvas:    lipgloss.AdaptiveColor{Light: "#F2F2F2", Dark: "#1A1A1A"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E6E6E6"})
	t.Selected = r.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#E4E2FF", Dark: "#2E2B5F"}).
		Bold(true)

	return t
}
