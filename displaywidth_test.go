package termframe

import "testing"

func TestRuneDisplayWidthClassification(t *testing.T) {
	cases := []struct {
		r    rune
		want int
	}{
		{0x09, 0},    // control
		{0x0300, 0},  // combining
		{0x200B, 0},  // zero-width space
		{0x65E5, 2},  // 日, CJK
		{0x1F600, 2}, // emoji
		{'A', 1},
	}
	for _, c := range cases {
		if got := RuneDisplayWidth(c.r); got != c.want {
			t.Errorf("RuneDisplayWidth(%U) = %d, want %d", c.r, got, c.want)
		}
	}
}

// TestStringWidthClosure is invariant 9: string_width(s) equals the sum
// of width(g) for each grapheme g in s.
func TestStringWidthClosure(t *testing.T) {
	s := "A日B"
	sum := 0
	for _, g := range Graphemes(s) {
		sum += graphemeWidth(g)
	}
	if got := StringWidth(s); got != sum {
		t.Fatalf("StringWidth(%q) = %d, want %d (sum of grapheme widths)", s, got, sum)
	}
	if sum != 4 {
		t.Fatalf("sum of grapheme widths = %d, want 4", sum)
	}
}

func TestGraphemesSplitsCombiningSequenceAsOneCluster(t *testing.T) {
	// "e" + combining acute accent is one grapheme cluster.
	s := "é"
	g := Graphemes(s)
	if len(g) != 1 {
		t.Fatalf("Graphemes(%q) = %v, want a single cluster", s, g)
	}
}
