// Package colorapprox provides nearest-color downsampling for
// terminals whose detected color profile is narrower than a Style's
// native color kind: RGB to the 256-color palette, and 256-color to the
// 16 named colors. Matches are implementation-defined; only round-trip
// closeness is specified.
package colorapprox

import (
	"github.com/lucasb-eyer/go-colorful"
	"termframe"
)

// xterm256 holds the RGB value of each of the 256 standard palette
// entries: 16 system colors, a 6x6x6 color cube, and a 24-step
// grayscale ramp.
var xterm256 [256]colorful.Color

func init() {
	system := [16][3]uint8{
		{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
		{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
		{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	for i, c := range system {
		xterm256[i] = colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
	}
	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				xterm256[i] = colorful.Color{
					R: float64(steps[r]) / 255,
					G: float64(steps[g]) / 255,
					B: float64(steps[b]) / 255,
				}
				i++
			}
		}
	}
	for g := 0; g < 24; g++ {
		v := uint8(8 + g*10)
		xterm256[i] = colorful.Color{R: float64(v) / 255, G: float64(v) / 255, B: float64(v) / 255}
		i++
	}
}

// named16 maps palette indices 0-15 to colorful.Color for nearest-named
// searches.
var named16 = xterm256[:16]

// NearestPalette returns the 256-palette index nearest c in CIE94
// distance.
func NearestPalette(c termframe.Color) uint8 {
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	best, bestDist := uint8(0), target.DistanceCIE94(xterm256[0])
	for i := 1; i < len(xterm256); i++ {
		d := target.DistanceCIE94(xterm256[i])
		if d < bestDist {
			best, bestDist = uint8(i), d
		}
	}
	return best
}

// NearestNamed returns the 16-color named index nearest c in CIE94
// distance, accepting either an RGB or a 256-palette Color.
func NearestNamed(c termframe.Color) uint8 {
	var target colorful.Color
	switch c.Mode {
	case termframe.ColorRGB:
		target = colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	case termframe.Color256:
		target = xterm256[c.Index]
	default:
		return c.Index
	}
	best, bestDist := uint8(0), target.DistanceCIE94(named16[0])
	for i := 1; i < len(named16); i++ {
		d := target.DistanceCIE94(named16[i])
		if d < bestDist {
			best, bestDist = uint8(i), d
		}
	}
	return best
}

// Downsample converts c to maxMode when c's own mode is wider than
// maxMode, leaving Default colors and colors already at or below
// maxMode untouched. With maxMode ColorDefault, any other color becomes
// the default color.
func Downsample(c termframe.Color, maxMode termframe.ColorMode) termframe.Color {
	if c.Mode == termframe.ColorDefault || c.Mode <= maxMode {
		return c
	}
	switch maxMode {
	case termframe.Color256:
		return termframe.PaletteColor(NearestPalette(c))
	case termframe.Color16:
		if c.Mode == termframe.ColorRGB {
			return termframe.NamedColor(NearestNamed(c))
		}
		return termframe.NamedColor(NearestNamed(c))
	default:
		return termframe.DefaultColor()
	}
}
