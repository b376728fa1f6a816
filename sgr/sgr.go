// Package sgr implements the Select Graphic Rendition delta encoder and
// the SequenceBuffer byte accumulator that packs diff Operations into a
// minimal escape-sequence byte stream.
package sgr

import (
	"strconv"

	"termframe"
)

// Encoder tracks the last emitted Style and emits only the SGR
// parameters that changed between successive SetStyle calls.
type Encoder struct {
	last    termframe.Style
	hasLast bool
}

// NewEncoder returns an Encoder with no prior style (the next Encode
// call emits the full SGR prefix).
func NewEncoder() *Encoder { return &Encoder{} }

// Reset nullifies the tracked style, forcing the next Encode to emit a
// full SGR prefix.
func (e *Encoder) Reset() { e.hasLast = false }

// Encode returns the SGR byte sequence transitioning from the last
// style to s, or nil if nothing changed.
func (e *Encoder) Encode(s termframe.Style) []byte {
	var params []string

	// House order (screen.go's writeStyle): attributes first, then
	// foreground/background colors.
	var addedAttrs, removedAttrs termframe.Attribute
	if e.hasLast {
		addedAttrs = s.Attr &^ e.last.Attr
		removedAttrs = e.last.Attr &^ s.Attr
	} else {
		addedAttrs = s.Attr
	}
	for _, a := range attrOrder {
		if addedAttrs.Has(a.flag) {
			params = append(params, strconv.Itoa(a.on))
		}
	}
	for _, a := range attrOrder {
		if removedAttrs.Has(a.flag) {
			params = append(params, strconv.Itoa(a.off))
		}
	}

	// On the first Encode (no last style), the tracked state is
	// equivalent to an all-default style: only emit a color parameter
	// if it actually differs from default, matching the behavior of a
	// fresh terminal that is already un-styled.
	if e.hasLast {
		if s.FG != e.last.FG {
			params = append(params, colorSGR(s.FG, true)...)
		}
		if s.BG != e.last.BG {
			params = append(params, colorSGR(s.BG, false)...)
		}
	} else {
		if s.FG.Mode != termframe.ColorDefault {
			params = append(params, colorSGR(s.FG, true)...)
		}
		if s.BG.Mode != termframe.ColorDefault {
			params = append(params, colorSGR(s.BG, false)...)
		}
	}

	e.last = s
	e.hasLast = true

	if len(params) == 0 {
		return nil
	}
	out := []byte("\x1b[")
	for i, p := range params {
		if i > 0 {
			out = append(out, ';')
		}
		out = append(out, p...)
	}
	out = append(out, 'm')
	return out
}

type attrCode struct {
	flag   termframe.Attribute
	on, off int
}

var attrOrder = []attrCode{
	{termframe.AttrBold, 1, 22},
	{termframe.AttrDim, 2, 22},
	{termframe.AttrItalic, 3, 23},
	{termframe.AttrUnderline, 4, 24},
	{termframe.AttrBlink, 5, 25},
	{termframe.AttrInverse, 7, 27},
	{termframe.AttrHidden, 8, 28},
	{termframe.AttrStrikethrough, 9, 29},
}

func colorSGR(c termframe.Color, fg bool) []string {
	switch c.Mode {
	case termframe.ColorDefault:
		if fg {
			return []string{"39"}
		}
		return []string{"49"}
	case termframe.Color16:
		base := 30
		idx := c.Index
		if idx >= 8 {
			base = 90
			idx -= 8
		}
		if !fg {
			base += 10
		}
		return []string{strconv.Itoa(base + int(idx))}
	case termframe.Color256:
		if fg {
			return []string{"38", "5", strconv.Itoa(int(c.Index))}
		}
		return []string{"48", "5", strconv.Itoa(int(c.Index))}
	case termframe.ColorRGB:
		if fg {
			return []string{"38", "2", strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B))}
		}
		return []string{"48", "2", strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B))}
	}
	if fg {
		return []string{"39"}
	}
	return []string{"49"}
}

// ResetSequence is the full SGR reset written at the end of every
// frame, to prevent residual style from bleeding into the next one.
const ResetSequence = "\x1b[0m"
