// Package detector decides how build output is presented.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how build output is presented.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeInteractive runs compilers under a pseudo-terminal and colors the output.
	ModeInteractive
	// ModePlain captures compiler output through pipes and prints it uncolored.
	ModePlain
)

// String implements fmt.Stringer.
func (m OutputMode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModePlain:
		return "plain"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stdout is a TTY and whether CI or NO_COLOR are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI || os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	return ModeInteractive
}

// ResolveMode applies user override flag to auto-detection.
// userFlag should be one of: "auto", "interactive", "color", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "interactive", "color":
		return ModeInteractive
	case "plain", "ci":
		return ModePlain
	default:
		return autoDetected
	}
}
