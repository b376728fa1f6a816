package sgr

import (
	"testing"

	"termframe"
)

// TestScenarioC mirrors spec.md scenario C: append_style(red, bold)
// from null emits ESC[1;31m (attributes before colors, the house
// order); the identical style again emits nothing.
func TestScenarioC(t *testing.T) {
	e := NewEncoder()
	style := termframe.DefaultStyle().Foreground(termframe.Red).Bold()

	got := e.Encode(style)
	want := "\x1b[1;31m"
	if string(got) != want {
		t.Fatalf("first Encode = %q, want %q", got, want)
	}

	if got := e.Encode(style); len(got) != 0 {
		t.Fatalf("second identical Encode = %q, want empty", got)
	}
}

// TestSGRDelta is invariant 5: consecutive identical SetStyle calls
// emit nothing for the second.
func TestSGRDelta(t *testing.T) {
	e := NewEncoder()
	a := termframe.DefaultStyle().Foreground(termframe.Blue)
	e.Encode(a)
	if got := e.Encode(a); len(got) != 0 {
		t.Fatalf("repeated identical style emitted %q, want nothing", got)
	}
}

func TestEncodeDefaultColorResetsTo3949(t *testing.T) {
	e := NewEncoder()
	e.Encode(termframe.DefaultStyle().Foreground(termframe.Red))
	got := e.Encode(termframe.DefaultStyle())
	want := "\x1b[39m"
	if string(got) != want {
		t.Fatalf("Encode back to default = %q, want %q", got, want)
	}
}

func TestEncodePaletteColor(t *testing.T) {
	e := NewEncoder()
	got := e.Encode(termframe.DefaultStyle().Foreground(termframe.PaletteColor(200)))
	want := "\x1b[38;5;200m"
	if string(got) != want {
		t.Fatalf("Encode palette color = %q, want %q", got, want)
	}
}

func TestEncodeRGBColor(t *testing.T) {
	e := NewEncoder()
	got := e.Encode(termframe.DefaultStyle().Background(termframe.RGB(10, 20, 30)))
	want := "\x1b[48;2;10;20;30m"
	if string(got) != want {
		t.Fatalf("Encode rgb bg = %q, want %q", got, want)
	}
}

func TestAttributeOnOffCodes(t *testing.T) {
	e := NewEncoder()
	bold := termframe.DefaultStyle().Bold()
	e.Encode(bold)
	got := e.Encode(termframe.DefaultStyle())
	want := "\x1b[22m"
	if string(got) != want {
		t.Fatalf("turning off bold = %q, want %q", got, want)
	}
}

func TestResetNullifiesLastStyle(t *testing.T) {
	e := NewEncoder()
	style := termframe.DefaultStyle().Foreground(termframe.Red)
	e.Encode(style)
	e.Reset()
	got := e.Encode(style)
	if len(got) == 0 {
		t.Fatalf("Encode after Reset emitted nothing, want full SGR prefix again")
	}
}

func TestSequenceBufferAutoFlushesAtThreshold(t *testing.T) {
	sb := NewSequenceBuffer()
	sb.Threshold = 4
	if payload := sb.Append([]byte("ab")); payload != nil {
		t.Fatalf("premature auto-flush: %q", payload)
	}
	payload := sb.Append([]byte("cd"))
	if string(payload) != "abcd" {
		t.Fatalf("auto-flush payload = %q, want %q", payload, "abcd")
	}
}
