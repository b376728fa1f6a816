package diff

import (
	"testing"

	"termframe"
)

func mustBuffer(t *testing.T, rows, cols int) *termframe.Buffer {
	t.Helper()
	b, err := termframe.NewBuffer(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// TestIdempotentDiff is invariant 1: Diff(buf, buf) = [].
func TestIdempotentDiff(t *testing.T) {
	b := mustBuffer(t, 24, 80)
	b.WriteString(1, 1, "Hello", termframe.DefaultStyle())
	if ops := Diff(b, b); len(ops) != 0 {
		t.Fatalf("Diff(buf, buf) = %v, want empty", ops)
	}
}

// TestScenarioA mirrors spec.md scenario A.
func TestScenarioA(t *testing.T) {
	current := mustBuffer(t, 24, 80)
	previous := mustBuffer(t, 24, 80)
	current.WriteString(1, 1, "Hello", termframe.DefaultStyle())

	ops := Diff(current, previous)
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3: %#v", len(ops), ops)
	}
	move, ok := ops[0].(MoveOp)
	if !ok || move.Row != 1 || move.Col != 1 {
		t.Fatalf("ops[0] = %#v, want Move(1,1)", ops[0])
	}
	if _, ok := ops[1].(SetStyleOp); !ok {
		t.Fatalf("ops[1] = %#v, want SetStyleOp", ops[1])
	}
	text, ok := ops[2].(TextOp)
	if !ok || text.Text != "Hello" {
		t.Fatalf("ops[2] = %#v, want Text(Hello)", ops[2])
	}
}

// TestScenarioE mirrors spec.md scenario E: three single-cell changes
// separated by gaps of 1 merge into one span of 5 cells.
func TestScenarioE(t *testing.T) {
	current := mustBuffer(t, 10, 20)
	previous := mustBuffer(t, 10, 20)
	style := termframe.DefaultStyle()
	current.Set(3, 5, termframe.NewCell("a", style))
	current.Set(3, 7, termframe.NewCell("b", style))
	current.Set(3, 9, termframe.NewCell("c", style))

	ops := Diff(current, previous)
	var moves, texts int
	for _, op := range ops {
		switch o := op.(type) {
		case MoveOp:
			moves++
			if o.Row != 3 || o.Col != 5 {
				t.Fatalf("move = %#v, want Move(3,5)", o)
			}
		case TextOp:
			texts++
			if len(o.Text) != 5 {
				t.Fatalf("text len = %d, want 5 (merged span incl. 2 unchanged gap cells): %q", len(o.Text), o.Text)
			}
		}
	}
	if moves != 1 {
		t.Fatalf("moves = %d, want 1", moves)
	}
	if texts != 1 {
		t.Fatalf("texts = %d, want 1", texts)
	}
}

func TestWidePairSpanNeverSplitsAPair(t *testing.T) {
	current := mustBuffer(t, 1, 20)
	previous := mustBuffer(t, 1, 20)
	current.WriteString(1, 1, "日", termframe.DefaultStyle())

	ops := Diff(current, previous)
	move, ok := ops[0].(MoveOp)
	if !ok {
		t.Fatalf("ops[0] = %#v, want MoveOp", ops[0])
	}
	if move.Col != 1 {
		t.Fatalf("span started at col %d, expected to include the wide primary at col 1", move.Col)
	}
}

func TestRoundTrip(t *testing.T) {
	current := mustBuffer(t, 5, 10)
	previous := mustBuffer(t, 5, 10)
	current.WriteString(2, 2, "hi", termframe.DefaultStyle())
	current.WriteString(4, 1, "bye", termframe.DefaultStyle())

	ops := Diff(current, previous)
	vt := applyToVirtualTerminal(t, previous, ops)

	for r := 1; r <= 5; r++ {
		for c := 1; c <= 10; c++ {
			want := current.Get(r, c)
			got := vt.Get(r, c)
			if want != got {
				t.Fatalf("cell (%d,%d): got %+v, want %+v", r, c, got, want)
			}
		}
	}
}

// applyToVirtualTerminal is a minimal virtual terminal for the
// round-trip invariant: it applies Operations directly as buffer
// writes, bypassing any byte-level encoding.
func applyToVirtualTerminal(t *testing.T, previous *termframe.Buffer, ops []Operation) *termframe.Buffer {
	t.Helper()
	vt, err := previous.Resize(previous.Rows(), previous.Cols())
	if err != nil {
		t.Fatal(err)
	}
	row, col := 1, 1
	style := termframe.DefaultStyle()
	for _, op := range ops {
		switch o := op.(type) {
		case MoveOp:
			row, col = o.Row, o.Col
		case SetStyleOp:
			style = o.Style
		case TextOp:
			for _, g := range termframe.Graphemes(o.Text) {
				cell := termframe.NewCell(g, style)
				vt.Set(row, col, cell)
				if cell.Width == 2 {
					vt.Set(row, col+1, termframe.WidePlaceholderCell(style))
					col++
				}
				col++
			}
		}
	}
	return vt
}
