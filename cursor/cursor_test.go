package cursor

import "testing"

func TestMoveToSamePositionEmitsNothing(t *testing.T) {
	o := NewOptimizer(Pos{Row: 1, Col: 1})
	if b := o.MoveTo(Pos{Row: 1, Col: 1}); len(b) != 0 {
		t.Fatalf("MoveTo same position = %q, want empty", b)
	}
}

// TestScenarioB mirrors spec.md scenario B: (5,10) -> (5,13). Three
// literal spaces (cost 3) beat the other candidates, \r plus ESC[12C
// (cost 6) and absolute ESC[5;13H (cost 7).
func TestScenarioB(t *testing.T) {
	o := NewOptimizer(Pos{Row: 5, Col: 10})
	got := o.MoveTo(Pos{Row: 5, Col: 13})
	want := "   "
	if string(got) != want {
		t.Fatalf("MoveTo(5,10->5,13) = %q, want %q", got, want)
	}
}

// TestCursorCostMinimality is invariant 4: the optimizer never chooses
// a sequence costlier than absolute positioning.
func TestCursorCostMinimality(t *testing.T) {
	positions := []Pos{{1, 1}, {1, 80}, {24, 1}, {24, 80}, {5, 10}, {5, 13}, {10, 5}, {3, 70}}
	for _, from := range positions {
		for _, to := range positions {
			o := NewOptimizer(from)
			got := o.MoveTo(to)
			absolute := absoluteCandidate(to)
			if len(got) > absolute.cost {
				t.Errorf("MoveTo(%v -> %v) cost %d exceeds absolute cost %d", from, to, len(got), absolute.cost)
			}
		}
	}
}

func TestMoveToHomeUsesHomeSequence(t *testing.T) {
	o := NewOptimizer(Pos{Row: 10, Col: 10})
	got := o.MoveTo(Pos{Row: 1, Col: 1})
	if string(got) != "\x1b[H" {
		t.Fatalf("MoveTo origin = %q, want ESC[H", got)
	}
}

func TestBytesSavedAccumulates(t *testing.T) {
	o := NewOptimizer(Pos{Row: 5, Col: 10})
	o.MoveTo(Pos{Row: 5, Col: 13})
	if o.BytesSaved() <= 0 {
		t.Fatalf("BytesSaved() = %d, want > 0 after a cheaper-than-absolute move", o.BytesSaved())
	}
}
