package termframe

import (
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/unicode/norm"
)

// Cell is the immutable unit of the terminal grid: a grapheme cluster
// plus style plus its precomputed display width. A wide grapheme (width
// 2) occupies its own cell and a following placeholder cell; the
// placeholder carries WidePlaceholder=true, an empty Glyph, and the
// primary's style.
type Cell struct {
	Glyph           string
	Style           Style
	Width           int
	WidePlaceholder bool
}

// EmptySpace is the canonical empty cell: a single space, default
// style, width 1.
var EmptySpace = Cell{Glyph: " ", Style: DefaultStyle(), Width: 1}

// NewCell constructs a Cell from caller-supplied text, sanitizing it so
// that no escape sequence the caller embeds can ever be emitted
// literally. Sanitization happens here, at construction, never at write
// time: an attacker-controlled string can only ever become a Cell whose
// Glyph is safe to write verbatim.
func NewCell(glyph string, style Style) Cell {
	glyph = sanitizeGlyph(glyph)
	if glyph == "" {
		glyph = " "
	}
	return Cell{
		Glyph: glyph,
		Style: style,
		Width: graphemeWidth(glyph),
	}
}

// sanitizeGlyph strips CSI/OSC/ESC escape sequences and drops control
// code points, keeping printable ASCII (0x20-0x7E) and anything at or
// above 0xA0.
func sanitizeGlyph(s string) string {
	s = ansi.Strip(s)
	s = norm.NFC.String(s)
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// WidePlaceholderCell returns the placeholder cell that must follow a
// wide-primary cell: empty glyph, width 0, style inherited from the
// primary.
func WidePlaceholderCell(primary Style) Cell {
	return Cell{Glyph: "", Style: primary, Width: 0, WidePlaceholder: true}
}

// Equal returns true if two cells are structurally equal over all
// fields: glyph, style, width, and placeholder flag.
func (c Cell) Equal(other Cell) bool {
	return c == other
}
