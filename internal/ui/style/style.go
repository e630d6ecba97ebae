// Package style defines the palette and glyphs of forge's terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette. Ash is for plain log lines, the others color outcomes.
var (
	Ash   = lipgloss.Color("#868E96")
	Moss  = lipgloss.Color("#2B8A3E")
	Rust  = lipgloss.Color("#C92A2A")
	Amber = lipgloss.Color("#F08C00")
)

// Mark is a colored glyph put in front of a line.
type Mark struct {
	Glyph string
	Color lipgloss.Color
}

// Marks for action outcomes and log levels.
var (
	Passed      = Mark{Glyph: "✓", Color: Moss}
	Failed      = Mark{Glyph: "✗", Color: Rust}
	Interrupted = Mark{Glyph: "~", Color: Amber}
	Caution     = Mark{Glyph: "▲", Color: Amber}
)

// Before returns s preceded by the glyph of m.
func (m Mark) Before(s string) string {
	return m.Glyph + " " + s
}
