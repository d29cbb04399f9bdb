package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	barStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().Bold(true)

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	progressFilledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))

	blockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	activeDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// ApplyAccent overrides the accent color used by the progress bar and
// the active ring dot. Called once at startup from config.
func ApplyAccent(color string) {
	if color == "" {
		return
	}
	progressFilledStyle = progressFilledStyle.Foreground(lipgloss.Color(color))
	activeDotStyle = activeDotStyle.Foreground(lipgloss.Color(color))
}

// dotGradient colors the inactive visualizer dots along a hue ramp so
// the ring reads as a sequence.
func dotGradient(n int) []lipgloss.Style {
	styles := make([]lipgloss.Style, n)
	for i := range styles {
		h := 220.0
		if n > 1 {
			h = 220.0 + 80.0*float64(i)/float64(n-1)
		}
		c := colorful.Hsl(h, 0.4, 0.5)
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	return styles
}
