package colorapprox

import (
	"testing"

	"termframe"
)

func TestNearestPaletteExactGrayscale(t *testing.T) {
	// Pure black is an exact match for system index 0 and for the color
	// cube's first entry, index 16.
	got := NearestPalette(termframe.RGB(0, 0, 0))
	if got != 0 && got != 16 {
		t.Fatalf("NearestPalette(black) = %d, want 0 or 16", got)
	}
}

func TestNearestPaletteWhite(t *testing.T) {
	got := NearestPalette(termframe.RGB(255, 255, 255))
	c := xterm256[got]
	r, g, b := c.R, c.G, c.B
	if r < 0.9 || g < 0.9 || b < 0.9 {
		t.Fatalf("NearestPalette(white) = %d with color %+v, want near-white", got, c)
	}
}

func TestNearestNamedFromRGB(t *testing.T) {
	// Pure red RGB should approximate to one of the red-ish named slots.
	got := NearestNamed(termframe.RGB(255, 0, 0))
	if got != 1 && got != 9 {
		t.Fatalf("NearestNamed(red) = %d, want 1 (Red) or 9 (BrightRed)", got)
	}
}

func TestNearestNamedFromPaletteIndexIsIdentityForLowIndices(t *testing.T) {
	got := NearestNamed(termframe.PaletteColor(0))
	if got != 0 {
		t.Fatalf("NearestNamed(palette 0) = %d, want 0", got)
	}
}

func TestDownsampleLeavesDefaultUntouched(t *testing.T) {
	c := termframe.DefaultColor()
	if got := Downsample(c, termframe.Color16); got != c {
		t.Fatalf("Downsample(default) = %+v, want unchanged default", got)
	}
}

func TestDownsampleLeavesNarrowerModeUntouched(t *testing.T) {
	c := termframe.NamedColor(3)
	if got := Downsample(c, termframe.ColorRGB); got != c {
		t.Fatalf("Downsample(16color, maxMode=RGB) = %+v, want unchanged", got)
	}
}

func TestDownsampleRGBToPalette(t *testing.T) {
	c := termframe.RGB(10, 20, 200)
	got := Downsample(c, termframe.Color256)
	if got.Mode != termframe.Color256 {
		t.Fatalf("Downsample(rgb, maxMode=256) mode = %v, want Color256", got.Mode)
	}
}

func TestDownsampleRGBToNamed(t *testing.T) {
	c := termframe.RGB(0, 255, 0)
	got := Downsample(c, termframe.Color16)
	if got.Mode != termframe.Color16 {
		t.Fatalf("Downsample(rgb, maxMode=16) mode = %v, want Color16", got.Mode)
	}
}

func TestDownsampleAnyToDefaultWhenProfileIsMonochrome(t *testing.T) {
	c := termframe.RGB(100, 100, 100)
	got := Downsample(c, termframe.ColorDefault)
	if got.Mode != termframe.ColorDefault {
		t.Fatalf("Downsample(rgb, maxMode=Default) mode = %v, want ColorDefault", got.Mode)
	}
}
