package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds the console styles bound to one output renderer
type Styles struct {
	Banner  lipgloss.Style
	Done    lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Stage   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates the console styles for renderer r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Banner: r.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Border(lipgloss.NormalBorder(), true, false).
			BorderForeground(ColorMuted),
		Done: r.NewStyle().
			Foreground(ColorSuccess),
		Error: r.NewStyle().
			Bold(true).
			Foreground(ColorError),
		Info: r.NewStyle().
			Foreground(ColorNormal),
		Label: r.NewStyle().
			Foreground(ColorSubtle).
			Width(13),
		Muted: r.NewStyle().
			Foreground(ColorMuted),
		Stage: r.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),
		Warning: r.NewStyle().
			Foreground(ColorWarning),
	}
}
