// Package detector provides environment detection for output rendering.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for command output.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeColor renders styled, colored output for interactive terminals.
	ModeColor
	// ModePlain renders unstyled output for CI and pipes.
	ModePlain
)

// DetectEnvironment returns the recommended output mode.
// Non-TTY stdout and CI environments get plain output.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeColor
}

// ResolveMode applies a user override flag to auto-detection.
// userFlag should be one of: "auto", "color", "plain", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "color":
		return ModeColor
	case "plain":
		return ModePlain
	default:
		return autoDetected
	}
}
