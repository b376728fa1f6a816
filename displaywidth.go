package termframe

import (
	"sort"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// codePointRange is a closed, inclusive range of Unicode code points
// sharing a display width.
type codePointRange struct {
	lo, hi rune
	width  int
}

// zeroWidthRanges are control codes, combining marks, and zero-width
// joiners/marks: they contribute 0 columns.
var zeroWidthRanges = []codePointRange{
	{0x0000, 0x001F, 0},
	{0x007F, 0x009F, 0},
	{0x0300, 0x036F, 0},
	{0x1AB0, 0x1AFF, 0},
	{0x1DC0, 0x1DFF, 0},
	{0x20D0, 0x20FF, 0},
	{0xFE20, 0xFE2F, 0},
	{0x200B, 0x200D, 0},
	{0x2060, 0x2060, 0},
	{0xFEFF, 0xFEFF, 0},
}

// wideRanges are East-Asian wide blocks and emoji blocks: they
// contribute 2 columns.
var wideRanges = []codePointRange{
	{0x1100, 0x11FF, 2},
	{0x2E80, 0x303E, 2},
	{0x3041, 0x33FF, 2},
	{0x3400, 0x4DBF, 2},
	{0x4E00, 0x9FFF, 2},
	{0x3040, 0x30FF, 2},
	{0x3130, 0x318F, 2},
	{0xAC00, 0xD7AF, 2},
	{0xF900, 0xFAFF, 2},
	{0xFF01, 0xFF60, 2},
	{0xFFE0, 0xFFE6, 2},
	{0x20000, 0x3FFFF, 2},
	{0x1F300, 0x1F64F, 2},
	{0x1F680, 0x1F6FF, 2},
	{0x1F900, 0x1F9FF, 2},
}

func init() {
	sort.Slice(zeroWidthRanges, func(i, j int) bool { return zeroWidthRanges[i].lo < zeroWidthRanges[j].lo })
	sort.Slice(wideRanges, func(i, j int) bool { return wideRanges[i].lo < wideRanges[j].lo })
}

func lookupRange(ranges []codePointRange, r rune) (int, bool) {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].hi >= r })
	if i < len(ranges) && ranges[i].lo <= r && r <= ranges[i].hi {
		return ranges[i].width, true
	}
	return 0, false
}

// RuneDisplayWidth classifies a single code point into {0,1,2} columns
// per the explicit ranges above, falling back to go-runewidth for code
// points outside them.
func RuneDisplayWidth(r rune) int {
	if w, ok := lookupRange(zeroWidthRanges, r); ok {
		return w
	}
	if w, ok := lookupRange(wideRanges, r); ok {
		return w
	}
	if w := runewidth.RuneWidth(r); w >= 0 {
		return w
	}
	return 1
}

// graphemeWidth returns the width of a grapheme cluster as the largest
// per-code-point width among its code points, not their sum, so the
// result stays within {0,1,2}: combining marks contribute 0 by the
// classification above, and a cluster of several wide code points (an
// emoji ZWJ sequence, for example) measures 2.
func graphemeWidth(g string) int {
	w := 0
	for _, r := range g {
		rw := RuneDisplayWidth(r)
		if rw > w {
			w = rw
		}
	}
	if w < 0 {
		w = 0
	}
	return w
}

// StringWidth returns the total display width of s, iterating grapheme
// clusters (not bytes or bare code points) via uniseg so that combining
// sequences and emoji ZWJ sequences measure as a single unit.
func StringWidth(s string) int {
	total := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if width <= 0 {
			width = graphemeWidth(cluster)
		}
		total += width
	}
	return total
}

// Graphemes splits s into grapheme clusters in order, for callers that
// need to walk them individually (e.g. Buffer.WriteString).
func Graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}
