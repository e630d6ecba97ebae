// Package output creates the termenv outputs forge writes logs and build
// progress to.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/forge/internal/ui/style"
)

// noColor reports whether NO_COLOR asks for plain text.
func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Detected returns the profile the terminal advertises. Log lines use it.
func Detected() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Fixed returns ANSI regardless of the terminal. Build progress uses it so
// that logs captured by CI keep their colors.
func Fixed() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// For returns an output on w rendering with profile. A nil w means stderr.
func For(w io.Writer, profile termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true))
}

// Paint renders the glyph of m in its color.
func Paint(out *termenv.Output, m style.Mark) termenv.Style {
	return out.String(m.Glyph).Foreground(out.Color(string(m.Color)))
}
