// Package termframe provides the rendering and runtime core of a
// terminal user-interface framework: a cell-grid double buffer with
// differential diffing, a cursor-motion optimizer, an SGR delta
// encoder, and an event-driven runtime loop.
package termframe

// Attribute represents text styling attributes that can be combined.
type Attribute uint8

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
	AttrHidden

	AttrNone Attribute = 0
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// ColorMode identifies the kind of value a Color carries.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal default, not set
	Color16                      // basic/bright 16-color enum (0-15)
	Color256                     // 256-color palette index (0-255)
	ColorRGB                     // 24-bit true color
)

// Color represents a terminal color: default, named 16-color, 256
// palette index, or 24-bit RGB. Zero value is ColorDefault.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{Mode: ColorDefault}
}

// NamedColor returns one of the 16 basic terminal colors (0-15, where
// 8-15 are the bright variants).
func NamedColor(index uint8) Color {
	return Color{Mode: Color16, Index: index}
}

// PaletteColor returns one of the 256 palette colors.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex returns a 24-bit true color from a hex value (e.g. 0xFF5500).
func Hex(hex uint32) Color {
	return Color{
		Mode: ColorRGB,
		R:    uint8((hex >> 16) & 0xFF),
		G:    uint8((hex >> 8) & 0xFF),
		B:    uint8(hex & 0xFF),
	}
}

// Equal returns true if two colors are equal.
func (c Color) Equal(other Color) bool {
	return c == other
}

// Standard named colors for convenience.
var (
	Black   = NamedColor(0)
	Red     = NamedColor(1)
	Green   = NamedColor(2)
	Yellow  = NamedColor(3)
	Blue    = NamedColor(4)
	Magenta = NamedColor(5)
	Cyan    = NamedColor(6)
	White   = NamedColor(7)

	BrightBlack   = NamedColor(8)
	BrightRed     = NamedColor(9)
	BrightGreen   = NamedColor(10)
	BrightYellow  = NamedColor(11)
	BrightBlue    = NamedColor(12)
	BrightMagenta = NamedColor(13)
	BrightCyan    = NamedColor(14)
	BrightWhite   = NamedColor(15)
)

// Style combines foreground/background color and attributes. It is the
// state tracked by the SGR delta encoder across Cells.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns a style with default colors and no attributes.
func DefaultStyle() Style {
	return Style{FG: DefaultColor(), BG: DefaultColor()}
}

// Foreground returns a new style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns a new style with the given background color.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Bold returns a new style with bold enabled.
func (s Style) Bold() Style { s.Attr = s.Attr.With(AttrBold); return s }

// Dim returns a new style with dim enabled.
func (s Style) Dim() Style { s.Attr = s.Attr.With(AttrDim); return s }

// Italic returns a new style with italic enabled.
func (s Style) Italic() Style { s.Attr = s.Attr.With(AttrItalic); return s }

// Underline returns a new style with underline enabled.
func (s Style) Underline() Style { s.Attr = s.Attr.With(AttrUnderline); return s }

// Inverse returns a new style with inverse (reverse video) enabled.
func (s Style) Inverse() Style { s.Attr = s.Attr.With(AttrInverse); return s }

// Strikethrough returns a new style with strikethrough enabled.
func (s Style) Strikethrough() Style { s.Attr = s.Attr.With(AttrStrikethrough); return s }

// Equal returns true if two styles are equal.
func (s Style) Equal(other Style) bool {
	return s == other
}
