package term

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/muesli/termenv"
	"termframe"
)

// DetectProfile inspects the environment (COLORTERM, TERM, TTY-ness)
// to decide the widest Color kind the output supports, for
// colorapprox.Downsample to target.
func DetectProfile(out *os.File) termframe.ColorMode {
	profile := colorprofile.Detect(out, os.Environ())
	switch profile {
	case colorprofile.TrueColor:
		return termframe.ColorRGB
	case colorprofile.ANSI256:
		return termframe.Color256
	case colorprofile.ANSI:
		return termframe.Color16
	default:
		return termframe.ColorDefault
	}
}

// DefaultBackgroundIsDark queries the terminal's default background
// color (via OSC 11, through termenv) to pick a light/dark theme
// automatically; it falls back to true (dark) if the terminal doesn't
// answer.
func DefaultBackgroundIsDark() bool {
	return termenv.HasDarkBackground()
}
