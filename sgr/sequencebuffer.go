package sgr

import (
	"termframe"
	"termframe/cursor"
	"termframe/diff"
)

// DefaultThreshold is the default auto-flush size in bytes.
const DefaultThreshold = 4096

// Stats are the accumulator's running totals.
type Stats struct {
	TotalBytes int
	FlushCount int
}

// SequenceBuffer accumulates encoded byte chunks and auto-flushes once
// the accumulated size reaches Threshold. It owns the SGR delta-encoder
// state so style transitions are correct across flushes.
type SequenceBuffer struct {
	chunks    [][]byte
	size      int
	Threshold int
	stats     Stats
	encoder   *Encoder
}

// NewSequenceBuffer returns a SequenceBuffer with the default
// threshold.
func NewSequenceBuffer() *SequenceBuffer {
	return &SequenceBuffer{Threshold: DefaultThreshold, encoder: NewEncoder()}
}

// Append enqueues data, returning an auto-flushed payload if the
// threshold was reached.
func (sb *SequenceBuffer) Append(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	sb.chunks = append(sb.chunks, data)
	sb.size += len(data)
	if sb.size >= sb.Threshold {
		payload, _ := sb.Flush()
		return payload
	}
	return nil
}

// AppendStyle invokes the delta encoder and appends the resulting SGR
// sequence, if any, returning an auto-flushed payload if the threshold
// was reached (as Append does).
func (sb *SequenceBuffer) AppendStyle(s termframe.Style) []byte {
	if seq := sb.encoder.Encode(s); len(seq) > 0 {
		return sb.Append(seq)
	}
	return nil
}

// ResetStyle nullifies the tracked style so the next AppendStyle call
// emits a full SGR prefix.
func (sb *SequenceBuffer) ResetStyle() { sb.encoder.Reset() }

// Flush returns the accumulated bytes in order and clears contents
// (but not the SGR encoder state), updating stats.
func (sb *SequenceBuffer) Flush() ([]byte, bool) {
	if sb.size == 0 {
		return nil, false
	}
	out := make([]byte, 0, sb.size)
	for _, c := range sb.chunks {
		out = append(out, c...)
	}
	sb.chunks = nil
	sb.size = 0
	sb.stats.TotalBytes += len(out)
	sb.stats.FlushCount++
	return out, true
}

// Stats returns a copy of the running statistics.
func (sb *SequenceBuffer) Stats() Stats { return sb.stats }

// EncodeFrame drains a diff.Operation stream through the cursor
// optimizer and SGR encoder, returning the full byte sequence for one
// frame (including the trailing reset). opt tracks cursor position
// across calls; pass the same instance every frame.
func EncodeFrame(sb *SequenceBuffer, ops []diff.Operation, opt *cursor.Optimizer) []byte {
	var out []byte
	for _, op := range ops {
		switch o := op.(type) {
		case diff.MoveOp:
			out = append(out, sb.Append(opt.MoveTo(cursor.Pos{Row: o.Row, Col: o.Col}))...)
		case diff.SetStyleOp:
			out = append(out, sb.AppendStyle(o.Style)...)
		case diff.TextOp:
			out = append(out, sb.Append([]byte(o.Text))...)
			advanceCursorForText(opt, o.Text)
		case diff.ResetOp:
			out = append(out, sb.Append([]byte(ResetSequence))...)
			sb.ResetStyle()
		}
	}
	out = append(out, sb.Append([]byte(ResetSequence))...)
	sb.ResetStyle()
	payload, _ := sb.Flush()
	return append(out, payload...)
}

// advanceCursorForText moves the optimizer's tracked cursor by the
// emitted text's display width, not its byte count, so a subsequent
// MoveTo sees the terminal's actual post-write column.
func advanceCursorForText(opt *cursor.Optimizer, text string) {
	pos := opt.Position()
	pos.Col += termframe.StringWidth(text)
	opt.SetPosition(pos)
}
