package input

import (
	"strings"
	"testing"

	"termframe/runtime"
)

func mustParser(t *testing.T, s string) *Parser {
	t.Helper()
	p, err := NewParser(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNextDecodesPlainASCIIRune(t *testing.T) {
	p := mustParser(t, "a")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != runtime.EventKey || e.Char != 'a' {
		t.Fatalf("event = %+v, want Key 'a'", e)
	}
}

func TestNextDecodesMultibyteRune(t *testing.T) {
	p := mustParser(t, "日")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Char != '日' {
		t.Fatalf("Char = %q, want 日", e.Char)
	}
}

func TestNextDecodesCtrlKey(t *testing.T) {
	p := mustParser(t, "\x03")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Char != 'c' || !e.Mods.Has(runtime.ModCtrl) {
		t.Fatalf("event = %+v, want ctrl-c", e)
	}
}

func TestNextDecodesBackspaceAndEnterAndTab(t *testing.T) {
	cases := map[string]string{
		"\x7f": "backspace",
		"\r":   "enter",
		"\n":   "enter",
		"\t":   "tab",
	}
	for input, want := range cases {
		p := mustParser(t, input)
		e, err := p.next()
		if err != nil {
			t.Fatal(err)
		}
		if e.Key != want {
			t.Fatalf("next(%q) key = %q, want %q", input, e.Key, want)
		}
	}
}

func TestNextDecodesBareEscape(t *testing.T) {
	p := mustParser(t, "\x1b")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Key != "escape" {
		t.Fatalf("key = %q, want escape", e.Key)
	}
}

func TestNextDecodesArrowKeys(t *testing.T) {
	cases := map[string]string{
		"\x1b[A": "up",
		"\x1b[B": "down",
		"\x1b[C": "right",
		"\x1b[D": "left",
	}
	for input, want := range cases {
		p := mustParser(t, input)
		e, err := p.next()
		if err != nil {
			t.Fatal(err)
		}
		if e.Kind != runtime.EventKey || e.Key != want {
			t.Fatalf("next(%q) = %+v, want key %q", input, e, want)
		}
	}
}

func TestNextDecodesSS3ArrowsAndFunctionKeys(t *testing.T) {
	cases := map[string]string{
		"\x1bOP": "f1",
		"\x1bOQ": "f2",
		"\x1bOR": "f3",
		"\x1bOS": "f4",
		"\x1bOA": "up",
	}
	for input, want := range cases {
		p := mustParser(t, input)
		e, err := p.next()
		if err != nil {
			t.Fatal(err)
		}
		if e.Key != want {
			t.Fatalf("next(%q) key = %q, want %q", input, e.Key, want)
		}
	}
}

func TestNextDecodesModifiedArrowWithCtrl(t *testing.T) {
	p := mustParser(t, "\x1b[1;5C")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Key != "right" || !e.Mods.Has(runtime.ModCtrl) {
		t.Fatalf("event = %+v, want ctrl-right", e)
	}
}

func TestNextDecodesTildeKeys(t *testing.T) {
	cases := map[string]string{
		"\x1b[1~":  "home",
		"\x1b[3~":  "delete",
		"\x1b[4~":  "end",
		"\x1b[5~":  "pgup",
		"\x1b[6~":  "pgdn",
		"\x1b[15~": "f5",
		"\x1b[24~": "f12",
	}
	for input, want := range cases {
		p := mustParser(t, input)
		e, err := p.next()
		if err != nil {
			t.Fatal(err)
		}
		if e.Key != want {
			t.Fatalf("next(%q) key = %q, want %q", input, e.Key, want)
		}
	}
}

func TestNextDecodesFocusEvents(t *testing.T) {
	p := mustParser(t, "\x1b[I")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != runtime.EventFocus || e.FocusAction != runtime.FocusGained {
		t.Fatalf("event = %+v, want FocusGained", e)
	}

	p = mustParser(t, "\x1b[O")
	e, err = p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != runtime.EventFocus || e.FocusAction != runtime.FocusLost {
		t.Fatalf("event = %+v, want FocusLost", e)
	}
}

func TestNextDecodesBracketedPaste(t *testing.T) {
	p := mustParser(t, "\x1b[200~hello world\x1b[201~")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != runtime.EventPaste || e.PasteContent != "hello world" {
		t.Fatalf("event = %+v, want Paste(hello world)", e)
	}
}

func TestNextDecodesSGRMousePressAndRelease(t *testing.T) {
	p := mustParser(t, "\x1b[<0;10;20M")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != runtime.EventMouse || e.MouseAction != runtime.MousePress || e.Button != runtime.ButtonLeft || e.X != 10 || e.Y != 20 {
		t.Fatalf("event = %+v, want press left (10,20)", e)
	}

	p = mustParser(t, "\x1b[<0;10;20m")
	e, err = p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.MouseAction != runtime.MouseRelease {
		t.Fatalf("event = %+v, want release", e)
	}
}

func TestNextDecodesSGRMouseScroll(t *testing.T) {
	p := mustParser(t, "\x1b[<64;5;5M")
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.MouseAction != runtime.MouseScrollUp {
		t.Fatalf("event = %+v, want scroll up", e)
	}
}

func TestNextDecodesX10Mouse(t *testing.T) {
	input := string([]byte{0x1b, '[', 'M', 32, 42, 52})
	p := mustParser(t, input)
	e, err := p.next()
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != runtime.EventMouse || e.X != 10 || e.Y != 20 {
		t.Fatalf("event = %+v, want mouse (10,20)", e)
	}
}

func TestDecodeArrowMod(t *testing.T) {
	cases := []struct {
		mod  int
		want runtime.Modifiers
	}{
		{1, 0},
		{2, runtime.ModShift},
		{3, runtime.ModAlt},
		{5, runtime.ModCtrl},
		{8, runtime.ModShift | runtime.ModAlt | runtime.ModCtrl},
	}
	for _, c := range cases {
		if got := decodeArrowMod(c.mod); got != c.want {
			t.Errorf("decodeArrowMod(%d) = %v, want %v", c.mod, got, c.want)
		}
	}
}

func TestDecodeSGRButtonDrag(t *testing.T) {
	action, button := decodeSGRButton(0x20, false)
	if action != runtime.MouseDrag || button != runtime.ButtonLeft {
		t.Fatalf("decodeSGRButton(drag) = %v,%v, want Drag,Left", action, button)
	}
}
