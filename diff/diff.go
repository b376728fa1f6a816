// Package diff compares two termframe Buffers of identical dimensions
// and produces a minimal ordered stream of Operations that converts a
// terminal last left in the "previous" state into the "current" state.
package diff

import "termframe"

// MergeGapThreshold is the maximum run of unchanged cells between two
// spans on the same row that still gets merged into one span, since
// re-emitting them is cheaper than a cursor-move sequence for short
// gaps.
const MergeGapThreshold = 3

// Operation is the diff's output, consumed by the encoder. It is a
// closed sum type.
type Operation interface {
	isOperation()
}

// MoveOp positions the cursor at (Row, Col), 1-indexed.
type MoveOp struct{ Row, Col int }

// SetStyleOp changes the active style.
type SetStyleOp struct{ Style termframe.Style }

// TextOp emits literal text at the cursor.
type TextOp struct{ Text string }

// ResetOp emits a full SGR reset.
type ResetOp struct{}

func (MoveOp) isOperation()      {}
func (SetStyleOp) isOperation()  {}
func (TextOp) isOperation()      {}
func (ResetOp) isOperation()     {}

type span struct {
	row              int
	startCol, endCol int // inclusive, 1-indexed
	cells            []termframe.Cell
}

// Diff compares current and previous and returns the ordered Operation
// stream. Diff(buf, buf) always returns nil (invariant 1: idempotent
// diff).
func Diff(current, previous *termframe.Buffer) []Operation {
	var ops []Operation
	rows := current.Rows()
	if previous.Rows() < rows {
		rows = previous.Rows()
	}
	for row := 1; row <= rows; row++ {
		curRow := current.GetRow(row)
		prevRow := previous.GetRow(row)
		spans := extractSpans(row, curRow, prevRow)
		spans = mergeGaps(spans, curRow)
		spans = expandWidePairs(spans, curRow)
		for _, sp := range spans {
			ops = append(ops, spanOps(sp)...)
		}
	}
	return ops
}

// extractSpans walks the row left to right, tracking an in-progress
// span. Equal cells always close a span (tie-break: close over
// extend).
func extractSpans(row int, cur, prev []termframe.Cell) []span {
	var spans []span
	var open *span
	n := len(cur)
	if len(prev) < n {
		n = len(prev)
	}
	for c := 0; c < n; c++ {
		col := c + 1
		if cur[c] == prev[c] {
			if open != nil {
				spans = append(spans, *open)
				open = nil
			}
			continue
		}
		if open == nil {
			open = &span{row: row, startCol: col, endCol: col}
		} else {
			open.endCol = col
		}
	}
	if open != nil {
		spans = append(spans, *open)
	}
	for i := range spans {
		spans[i].cells = cur[spans[i].startCol-1 : spans[i].endCol]
	}
	return spans
}

// mergeGaps merges adjacent spans separated by at most
// MergeGapThreshold unchanged cells, since re-emitting them is cheaper
// than a cursor move.
func mergeGaps(spans []span, cur []termframe.Cell) []span {
	if len(spans) < 2 {
		return spans
	}
	merged := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		gap := sp.startCol - last.endCol - 1
		if gap >= 0 && gap <= MergeGapThreshold {
			last.endCol = sp.endCol
			last.cells = cur[last.startCol-1 : last.endCol]
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// expandWidePairs enforces the conservative wide-pair policy: a span
// never starts or ends mid-pair. It is expanded to include the primary
// when only the placeholder changed, and to include the placeholder
// when only the primary changed.
func expandWidePairs(spans []span, cur []termframe.Cell) []span {
	n := len(cur)
	for i := range spans {
		sp := &spans[i]
		if sp.startCol > 1 && cur[sp.startCol-1].WidePlaceholder {
			sp.startCol--
		}
		if sp.endCol < n && cur[sp.endCol-1].Width == 2 {
			sp.endCol++
		}
		sp.cells = cur[sp.startCol-1 : sp.endCol]
	}
	return spans
}

// spanOps emits [Move, (SetStyle, Text)...] for one span, coalescing
// contiguous cells with identical style into a single text run and
// merging consecutive Text operations, dropping a SetStyle that
// exactly equals the previous one.
func spanOps(sp span) []Operation {
	ops := []Operation{MoveOp{Row: sp.row, Col: sp.startCol}}
	var runStyle termframe.Style
	var runText []byte
	haveRun := false
	flush := func() {
		if !haveRun {
			return
		}
		ops = append(ops, SetStyleOp{Style: runStyle}, TextOp{Text: string(runText)})
		runText = nil
		haveRun = false
	}
	for _, cell := range sp.cells {
		if cell.WidePlaceholder {
			continue
		}
		if !haveRun || cell.Style != runStyle {
			flush()
			runStyle = cell.Style
			haveRun = true
		}
		runText = append(runText, cell.Glyph...)
	}
	flush()
	return coalesceText(ops)
}

// coalesceText merges consecutive TextOps (same implicit cursor) and
// drops a SetStyleOp identical to the one before it within the stream.
func coalesceText(ops []Operation) []Operation {
	if len(ops) == 0 {
		return ops
	}
	var out []Operation
	var lastStyle *termframe.Style
	for _, op := range ops {
		switch o := op.(type) {
		case TextOp:
			if len(out) > 0 {
				if pt, ok := out[len(out)-1].(TextOp); ok {
					out[len(out)-1] = TextOp{Text: pt.Text + o.Text}
					continue
				}
			}
		case SetStyleOp:
			if lastStyle != nil && *lastStyle == o.Style {
				continue
			}
			st := o.Style
			lastStyle = &st
		}
		out = append(out, op)
	}
	return out
}
