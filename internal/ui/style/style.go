// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// Component tree styles used by the status view.
var (
	// Name renders a component name.
	Name = lipgloss.NewStyle().Foreground(Iris).Bold(true)

	// Version renders a published version number.
	Version = lipgloss.NewStyle().Foreground(Green)

	// Experimental renders a non-published version marker.
	Experimental = lipgloss.NewStyle().Foreground(Yellow)

	// Muted renders structural tree characters.
	Muted = lipgloss.NewStyle().Foreground(Slate)
)
