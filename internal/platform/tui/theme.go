package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the frog pond screens.
// Styles are created from one renderer so SSH sessions get colours matching
// their own terminal.
type Theme struct {
	renderer *lipgloss.Renderer

	// HUD styles
	HUDTitle    lipgloss.Style
	HUDValue    lipgloss.Style
	HUDWarning  lipgloss.Style
	HUDControls lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayWon    lipgloss.Style
	OverlayLost   lipgloss.Style
	OverlayText   lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// NewTheme returns the default theme drawn with r. A nil renderer uses the
// process-wide default.
func NewTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		renderer: r,

		HUDTitle:    r.NewStyle().Foreground(lipgloss.Color("#5fd7ff")).Bold(true),
		HUDValue:    r.NewStyle().Foreground(lipgloss.Color("#eeeeee")),
		HUDWarning:  r.NewStyle().Foreground(lipgloss.Color("#ff875f")),
		HUDControls: r.NewStyle().Foreground(lipgloss.Color("#8a8a8a")),

		OverlayBorder: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#eeeeee")).
			Padding(1, 3),
		OverlayWon:  r.NewStyle().Foreground(lipgloss.Color("#5fd787")).Bold(true),
		OverlayLost: r.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true),
		OverlayText: r.NewStyle().Foreground(lipgloss.Color("#eeeeee")),

		MenuTitle:       r.NewStyle().Foreground(lipgloss.Color("#5fd787")).Bold(true),
		MenuItemNormal:  r.NewStyle().Foreground(lipgloss.Color("#d0d0d0")),
		MenuItemActive:  r.NewStyle().Foreground(lipgloss.Color("#ffd75f")).Bold(true),
		MenuDescription: r.NewStyle().Foreground(lipgloss.Color("#8a8a8a")),
	}
}

// Renderer returns the renderer the theme was built with.
func (t Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

// NewStyle returns an empty style bound to the theme's renderer.
func (t Theme) NewStyle() lipgloss.Style {
	return t.renderer.NewStyle()
}
