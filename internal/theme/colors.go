package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - banners
	ColorSecondary Color = "86" // Cyan - stage headers
)

// UI semantic colors
const (
	ColorError   Color = "196" // Bright red
	ColorMuted   Color = "241" // Gray - secondary text
	ColorNormal  Color = "250" // Default text
	ColorSubtle  Color = "245" // Light gray - labels
	ColorSuccess Color = "2"   // Green - stage done
	ColorWarning Color = "3"   // Yellow - skipped records
)
