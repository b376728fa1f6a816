// Package cursor implements the cost-based cursor-motion optimizer:
// given a previous and a target position, it emits the cheapest byte
// sequence among a fixed candidate set.
package cursor

import (
	"fmt"
	"strconv"
)

// SpaceThreshold is the largest same-row rightward move for which a
// run of literal spaces is considered as a candidate.
const SpaceThreshold = 3

// Pos is a 1-indexed terminal cursor position.
type Pos struct{ Row, Col int }

// Optimizer tracks the cursor's last known position and accumulates
// bytes-saved diagnostics against an always-absolute-positioning
// baseline.
type Optimizer struct {
	cur        Pos
	bytesSaved int
}

// NewOptimizer returns an Optimizer starting at the given position.
func NewOptimizer(start Pos) *Optimizer {
	return &Optimizer{cur: start}
}

// Position returns the optimizer's tracked cursor position.
func (o *Optimizer) Position() Pos { return o.cur }

// SetPosition resets the tracked position without emitting bytes, for
// callers that know the terminal's cursor moved out of band (e.g. after
// a screen clear).
func (o *Optimizer) SetPosition(p Pos) { o.cur = p }

// BytesSaved returns the cumulative savings vs. the always-absolute
// baseline.
func (o *Optimizer) BytesSaved() int { return o.bytesSaved }

type candidate struct {
	bytes []byte
	cost  int
}

// MoveTo returns the cheapest byte sequence moving the cursor from its
// tracked position to target, and updates the tracked position.
func (o *Optimizer) MoveTo(target Pos) []byte {
	from := o.cur
	defer func() { o.cur = target }()

	if from == target {
		return nil
	}

	absolute := absoluteCandidate(target)
	candidates := []candidate{absolute}

	dx := target.Col - from.Col
	dy := target.Row - from.Row

	if dy == 0 && dx > 0 && dx <= SpaceThreshold {
		candidates = append(candidates, candidate{
			bytes: spacesOf(dx),
			cost:  dx,
		})
	}

	if target.Col == 1 {
		c := []byte("\r")
		cost := 1
		vb, vc := verticalSeq(dy)
		c = append(c, vb...)
		cost += vc
		candidates = append(candidates, candidate{bytes: c, cost: cost})
	} else if dx != 0 || dy != 0 {
		c := []byte("\r")
		cost := 1
		vb, vc := verticalSeq(dy)
		c = append(c, vb...)
		cost += vc
		hb, hc := horizontalSeq(target.Col - 1)
		c = append(c, hb...)
		cost += hc
		candidates = append(candidates, candidate{bytes: c, cost: cost})
	}

	if target.Row == 1 && target.Col == 1 {
		candidates = append(candidates, candidate{bytes: []byte("\x1b[H"), cost: 3})
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.cost < best.cost {
			best = c
		}
	}
	if best.cost < absolute.cost {
		o.bytesSaved += absolute.cost - best.cost
	}
	return best.bytes
}

func absoluteCandidate(target Pos) candidate {
	b := []byte(fmt.Sprintf("\x1b[%d;%dH", target.Row, target.Col))
	return candidate{bytes: b, cost: len(b)}
}

func spacesOf(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return b
}

// verticalSeq returns the byte sequence moving dy rows (positive =
// down) plus its cost, using repeated \n for down moves and CSI A for
// up moves (there is no "move down" control char cheaper than \n).
func verticalSeq(dy int) ([]byte, int) {
	if dy == 0 {
		return nil, 0
	}
	if dy > 0 {
		b := make([]byte, 0, dy)
		for i := 0; i < dy; i++ {
			b = append(b, '\n')
		}
		return b, dy
	}
	n := -dy
	suffix := "A"
	if n == 1 {
		b := []byte("\x1b[A")
		return b, len(b)
	}
	b := []byte("\x1b[" + strconv.Itoa(n) + suffix)
	return b, len(b)
}

// horizontalSeq returns the byte sequence moving n columns right
// (n>=0) via CSI C.
func horizontalSeq(n int) ([]byte, int) {
	if n <= 0 {
		return nil, 0
	}
	if n == 1 {
		b := []byte("\x1b[C")
		return b, len(b)
	}
	b := []byte("\x1b[" + strconv.Itoa(n) + "C")
	return b, len(b)
}
