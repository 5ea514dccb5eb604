package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Styles bundles the lipgloss styles used for terminal output.
type Styles struct {
	Error      lipgloss.Style
	Suggestion lipgloss.Style
	Header     lipgloss.Style
	Muted      lipgloss.Style
}

// DefaultStyles returns the standard style set, degraded to plain text when
// the terminal does not support color.
func DefaultStyles() Styles {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return Styles{}
	}
	return Styles{
		Error:      lipgloss.NewStyle().Foreground(ColorError),
		Suggestion: lipgloss.NewStyle().Foreground(ColorInfo),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary),
		Muted:      lipgloss.NewStyle().Foreground(ColorMuted),
	}
}
