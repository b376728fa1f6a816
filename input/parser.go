// Package input parses a raw terminal input byte stream into
// runtime.Event values, per the escape-sequence tables in the
// rendering core's external-interfaces contract.
package input

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/mattn/go-localereader"
	"github.com/muesli/cancelreader"
	"termframe/runtime"
)

// Parser reads from an underlying reader and emits runtime.Events.
// The reader is wrapped in a cancelreader so Stop can unblock a
// pending Read, and in a localereader so non-UTF8 locales are
// transcoded before any escape-sequence matching happens.
type Parser struct {
	cr  cancelreader.CancelReader
	buf *bufio.Reader
}

// NewParser wraps r (typically os.Stdin) for cancellable, locale-aware
// reads.
func NewParser(r io.Reader) (*Parser, error) {
	transcoded := localereader.NewReader(r)
	cr, err := cancelreader.NewReader(transcoded)
	if err != nil {
		return nil, err
	}
	return &Parser{cr: cr, buf: bufio.NewReaderSize(cr, 256)}, nil
}

// Stop cancels any in-flight Read, causing Run to return.
func (p *Parser) Stop() { p.cr.Cancel() }

// Run reads and parses events until ctx is canceled or Stop is called,
// dispatching each to rt.
func (p *Parser) Run(ctx context.Context, rt *runtime.Runtime) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		e, err := p.next()
		if err != nil {
			return err
		}
		rt.Dispatch(e)
	}
}

func (p *Parser) next() (runtime.Event, error) {
	b, err := p.buf.ReadByte()
	if err != nil {
		return runtime.Event{}, err
	}
	now := time.Now()

	switch {
	case b == 0x1b:
		return p.parseEscape(now)
	case b == 0x0d || b == 0x0a:
		return runtime.Event{Kind: runtime.EventKey, Key: "enter", Time: now}, nil
	case b == 0x09:
		return runtime.Event{Kind: runtime.EventKey, Key: "tab", Time: now}, nil
	case b == 0x7f || b == 0x08:
		return runtime.Event{Kind: runtime.EventKey, Key: "backspace", Time: now}, nil
	case b >= 0x01 && b <= 0x1a:
		return runtime.Event{
			Kind: runtime.EventKey,
			Char: rune('a' + b - 1),
			Mods: runtime.ModCtrl,
			Time: now,
		}, nil
	default:
		r, size := p.decodeRune(b)
		_ = size
		return runtime.Event{Kind: runtime.EventKey, Char: r, Time: now}, nil
	}
}

// decodeRune reassembles a UTF-8 rune starting with the already-read
// lead byte b.
func (p *Parser) decodeRune(b byte) (rune, int) {
	if b < 0x80 {
		return rune(b), 1
	}
	n := 0
	switch {
	case b&0xE0 == 0xC0:
		n = 1
	case b&0xF0 == 0xE0:
		n = 2
	case b&0xF8 == 0xF0:
		n = 3
	default:
		return rune(b), 1
	}
	buf := make([]byte, n+1)
	buf[0] = b
	for i := 0; i < n; i++ {
		nb, err := p.buf.ReadByte()
		if err != nil {
			return rune(b), 1
		}
		buf[i+1] = nb
	}
	r := []rune(string(buf))
	if len(r) == 0 {
		return rune(b), 1
	}
	return r[0], len(buf)
}

// parseEscape handles ESC followed by CSI, SS3, or an Alt-prefixed key.
// A bare Escape key is reported only when the reader has no further
// byte (end of input or a read error): the lookahead waits for the next
// byte, so on a live terminal a lone ESC is not reported until another
// byte arrives, and that byte is then parsed as part of the sequence.
func (p *Parser) parseEscape(now time.Time) (runtime.Event, error) {
	next, err := p.buf.Peek(1)
	if err != nil || len(next) == 0 {
		return runtime.Event{Kind: runtime.EventKey, Key: "escape", Time: now}, nil
	}
	switch next[0] {
	case '[':
		p.buf.ReadByte()
		return p.parseCSI(now)
	case 'O':
		p.buf.ReadByte()
		return p.parseSS3(now)
	default:
		b, _ := p.buf.ReadByte()
		return runtime.Event{Kind: runtime.EventKey, Char: rune(b), Mods: runtime.ModAlt, Time: now}, nil
	}
}

var tildeKeys = map[int]string{
	1: "home", 2: "insert", 3: "delete", 4: "end", 5: "pgup", 6: "pgdn",
	15: "f5", 17: "f6", 18: "f7", 19: "f8", 20: "f9", 21: "f10", 23: "f11", 24: "f12",
}

// parseCSI handles arrows, modified arrows, tilde-terminated special
// keys, bracketed paste, focus events, and X10/SGR mouse reports.
func (p *Parser) parseCSI(now time.Time) (runtime.Event, error) {
	switch {
	case p.peekIs('A'):
		p.buf.ReadByte()
		return runtime.Event{Kind: runtime.EventKey, Key: "up", Time: now}, nil
	case p.peekIs('B'):
		p.buf.ReadByte()
		return runtime.Event{Kind: runtime.EventKey, Key: "down", Time: now}, nil
	case p.peekIs('C'):
		p.buf.ReadByte()
		return runtime.Event{Kind: runtime.EventKey, Key: "right", Time: now}, nil
	case p.peekIs('D'):
		p.buf.ReadByte()
		return runtime.Event{Kind: runtime.EventKey, Key: "left", Time: now}, nil
	case p.peekIs('I'):
		p.buf.ReadByte()
		return runtime.Event{Kind: runtime.EventFocus, FocusAction: runtime.FocusGained, Time: now}, nil
	case p.peekIs('O'):
		p.buf.ReadByte()
		return runtime.Event{Kind: runtime.EventFocus, FocusAction: runtime.FocusLost, Time: now}, nil
	case p.peekIs('M'):
		p.buf.ReadByte()
		return p.parseX10Mouse(now)
	case p.peekIs('<'):
		p.buf.ReadByte()
		return p.parseSGRMouse(now)
	case p.peekIs('2'):
		return p.parseBracketedPasteOrTilde(now)
	default:
		return p.parseNumericCSI(now)
	}
}

func (p *Parser) peekIs(c byte) bool {
	b, err := p.buf.Peek(1)
	return err == nil && len(b) > 0 && b[0] == c
}

// parseBracketedPasteOrTilde disambiguates ESC[200~/ESC[201~ (paste
// markers) from a plain ESC[2~ (insert key) / ESC[2X~ tilde key by
// reading the full numeric prefix first.
func (p *Parser) parseBracketedPasteOrTilde(now time.Time) (runtime.Event, error) {
	n, ok := p.readNumber()
	if !ok {
		return runtime.Event{Kind: runtime.EventKey, Key: "unknown", Time: now}, nil
	}
	term, _ := p.buf.ReadByte()
	if n == 200 && term == '~' {
		content := p.readUntilPasteEnd()
		return runtime.Event{Kind: runtime.EventPaste, PasteContent: content, Time: now}, nil
	}
	if term == '~' {
		if key, ok := tildeKeys[n]; ok {
			return runtime.Event{Kind: runtime.EventKey, Key: key, Time: now}, nil
		}
	}
	return runtime.Event{Kind: runtime.EventKey, Key: "unknown", Time: now}, nil
}

func (p *Parser) readUntilPasteEnd() string {
	var out []byte
	const endMarker = "\x1b[201~"
	for {
		b, err := p.buf.ReadByte()
		if err != nil {
			break
		}
		out = append(out, b)
		if len(out) >= len(endMarker) && string(out[len(out)-len(endMarker):]) == endMarker {
			return string(out[:len(out)-len(endMarker)])
		}
	}
	return string(out)
}

// parseNumericCSI handles ESC[{n}~ tilde keys and ESC[1;{mod}A-D
// modified arrows.
func (p *Parser) parseNumericCSI(now time.Time) (runtime.Event, error) {
	n, ok := p.readNumber()
	if !ok {
		return runtime.Event{Kind: runtime.EventKey, Key: "unknown", Time: now}, nil
	}
	b, err := p.buf.ReadByte()
	if err != nil {
		return runtime.Event{Kind: runtime.EventKey, Key: "unknown", Time: now}, nil
	}
	if b == ';' {
		mod, _ := p.readNumber()
		final, _ := p.buf.ReadByte()
		mods := decodeArrowMod(mod)
		switch final {
		case 'A':
			return runtime.Event{Kind: runtime.EventKey, Key: "up", Mods: mods, Time: now}, nil
		case 'B':
			return runtime.Event{Kind: runtime.EventKey, Key: "down", Mods: mods, Time: now}, nil
		case 'C':
			return runtime.Event{Kind: runtime.EventKey, Key: "right", Mods: mods, Time: now}, nil
		case 'D':
			return runtime.Event{Kind: runtime.EventKey, Key: "left", Mods: mods, Time: now}, nil
		}
	}
	if b == '~' {
		if key, ok := tildeKeys[n]; ok {
			return runtime.Event{Kind: runtime.EventKey, Key: key, Time: now}, nil
		}
	}
	return runtime.Event{Kind: runtime.EventKey, Key: "unknown", Time: now}, nil
}

// decodeArrowMod decodes the CSI modifier parameter: mod = 1 + bitmask,
// with bit 1 shift, bit 2 alt, bit 4 ctrl (so 2 = shift, 3 = alt,
// 5 = ctrl).
func decodeArrowMod(mod int) runtime.Modifiers {
	if mod <= 1 {
		return 0
	}
	bits := mod - 1
	var m runtime.Modifiers
	if bits&1 != 0 {
		m |= runtime.ModShift
	}
	if bits&2 != 0 {
		m |= runtime.ModAlt
	}
	if bits&4 != 0 {
		m |= runtime.ModCtrl
	}
	return m
}

func (p *Parser) readNumber() (int, bool) {
	n := 0
	read := false
	for {
		b, err := p.buf.Peek(1)
		if err != nil || len(b) == 0 || b[0] < '0' || b[0] > '9' {
			break
		}
		p.buf.ReadByte()
		n = n*10 + int(b[0]-'0')
		read = true
	}
	return n, read
}

// parseSS3 handles ESC O P|Q|R|S (F1-F4) and ESC O A/B/C/D (arrows).
func (p *Parser) parseSS3(now time.Time) (runtime.Event, error) {
	b, err := p.buf.ReadByte()
	if err != nil {
		return runtime.Event{Kind: runtime.EventKey, Key: "unknown", Time: now}, nil
	}
	switch b {
	case 'P':
		return runtime.Event{Kind: runtime.EventKey, Key: "f1", Time: now}, nil
	case 'Q':
		return runtime.Event{Kind: runtime.EventKey, Key: "f2", Time: now}, nil
	case 'R':
		return runtime.Event{Kind: runtime.EventKey, Key: "f3", Time: now}, nil
	case 'S':
		return runtime.Event{Kind: runtime.EventKey, Key: "f4", Time: now}, nil
	case 'A':
		return runtime.Event{Kind: runtime.EventKey, Key: "up", Time: now}, nil
	case 'B':
		return runtime.Event{Kind: runtime.EventKey, Key: "down", Time: now}, nil
	case 'C':
		return runtime.Event{Kind: runtime.EventKey, Key: "right", Time: now}, nil
	case 'D':
		return runtime.Event{Kind: runtime.EventKey, Key: "left", Time: now}, nil
	}
	return runtime.Event{Kind: runtime.EventKey, Key: "unknown", Time: now}, nil
}

// parseX10Mouse handles ESC[M {button} {col+32} {row+32}.
func (p *Parser) parseX10Mouse(now time.Time) (runtime.Event, error) {
	b, err1 := p.buf.ReadByte()
	col, err2 := p.buf.ReadByte()
	row, err3 := p.buf.ReadByte()
	if err1 != nil || err2 != nil || err3 != nil {
		return runtime.Event{Kind: runtime.EventKey, Key: "unknown", Time: now}, nil
	}
	action, button := decodeX10Button(b)
	return runtime.Event{
		Kind: runtime.EventMouse, MouseAction: action, Button: button,
		X: int(col) - 32, Y: int(row) - 32, Time: now,
	}, nil
}

// parseSGRMouse handles ESC[<{button};{col};{row}{M|m}.
func (p *Parser) parseSGRMouse(now time.Time) (runtime.Event, error) {
	btn, _ := p.readNumber()
	p.buf.ReadByte() // ';'
	col, _ := p.readNumber()
	p.buf.ReadByte() // ';'
	row, _ := p.readNumber()
	final, _ := p.buf.ReadByte()

	action, button := decodeSGRButton(btn, final == 'm')
	return runtime.Event{
		Kind: runtime.EventMouse, MouseAction: action, Button: button,
		X: col, Y: row, Time: now,
	}, nil
}

func decodeX10Button(b byte) (runtime.MouseAction, runtime.MouseButton) {
	code := int(b) - 32
	return decodeSGRButton(code, false)
}

func decodeSGRButton(code int, release bool) (runtime.MouseAction, runtime.MouseButton) {
	if code&0x40 != 0 {
		if code&1 != 0 {
			return runtime.MouseScrollDown, runtime.ButtonNone
		}
		return runtime.MouseScrollUp, runtime.ButtonNone
	}
	button := runtime.MouseButton(code&0x3) + 1
	if code&0x3 == 3 {
		button = runtime.ButtonNone
	}
	switch {
	case release:
		return runtime.MouseRelease, button
	case code&0x20 != 0:
		return runtime.MouseDrag, button
	default:
		return runtime.MousePress, button
	}
}
