// Package term implements the terminal-driver external collaborator:
// raw-mode control, alternate screen, cursor visibility and shape,
// mouse tracking, bracketed paste, focus reporting, resize
// notification, and OSC 52 clipboard writes.
package term

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// MouseMode selects which mouse-tracking escape sequences to enable.
type MouseMode uint8

const (
	MouseOff MouseMode = iota
	MousePress
	MouseDrag
	MouseAny
)

// CursorShape selects the terminal cursor's rendered shape.
type CursorShape int

const (
	CursorDefault        CursorShape = 0
	CursorBlockBlink     CursorShape = 1
	CursorBlock          CursorShape = 2
	CursorUnderlineBlink CursorShape = 3
	CursorUnderline      CursorShape = 4
	CursorBarBlink       CursorShape = 5
	CursorBar            CursorShape = 6
)

// Size is a terminal's dimensions in character cells.
type Size struct{ Rows, Cols int }

// Driver owns a terminal's raw-mode state, writes framed output, and
// notifies on resize. Grounded on screen.go's EnterRawMode/ExitRawMode
// ioctl sequence and handleSignals SIGWINCH handling.
type Driver struct {
	out *os.File
	fd  int

	mu          sync.Mutex
	origTermios *unix.Termios
	inRawMode   bool
	altScreen   bool

	resizeCh chan Size
	sigCh    chan os.Signal
	stopCh   chan struct{}
}

// NewDriver wraps out (typically os.Stdout) as a Driver.
func NewDriver(out *os.File) *Driver {
	return &Driver{
		out:      out,
		fd:       int(out.Fd()),
		resizeCh: make(chan Size, 1),
		sigCh:    make(chan os.Signal, 1),
		stopCh:   make(chan struct{}),
	}
}

// IsTerminal reports whether the wrapped file descriptor is a TTY.
func (d *Driver) IsTerminal() bool {
	return isatty.IsTerminal(d.out.Fd()) || isatty.IsCygwinTerminal(d.out.Fd())
}

// Size returns the terminal's current dimensions via TIOCGWINSZ.
func (d *Driver) Size() (Size, error) {
	cols, rows, err := term.GetSize(d.fd)
	if err != nil {
		return Size{}, err
	}
	return Size{Rows: rows, Cols: cols}, nil
}

// Write sends bytes directly to the terminal.
func (d *Driver) Write(p []byte) (int, error) {
	return d.out.Write(p)
}

// EnterRawMode puts the terminal into raw mode and enters the
// alternate screen, hides the cursor, and enables bracketed paste.
// Grounded on screen.go's EnterRawMode.
func (d *Driver) EnterRawMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inRawMode {
		return nil
	}
	orig, err := unix.IoctlGetTermios(d.fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	d.origTermios = orig

	raw := *orig
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(d.fd, ioctlSetTermios, &raw); err != nil {
		return err
	}
	d.inRawMode = true

	d.out.WriteString("\x1b[?1049h\x1b[2J\x1b[H\x1b[?25l\x1b[?2004h")
	d.altScreen = true
	return nil
}

// ExitRawMode restores the original termios settings and the primary
// screen, showing the cursor and disabling bracketed paste.
func (d *Driver) ExitRawMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.inRawMode {
		return nil
	}
	d.out.WriteString("\x1b[?2004l\x1b[?25h\x1b[?1049l")
	d.altScreen = false
	err := unix.IoctlSetTermios(d.fd, ioctlSetTermios, d.origTermios)
	d.inRawMode = false
	return err
}

// Restore implements runtime.Restorer: it independently guards each
// restore step so a failure in one does not skip the rest.
func (d *Driver) Restore() error {
	var firstErr error
	guard := func(f func() error) {
		if err := f(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	guard(func() error { d.DisableMouseTracking(); return nil })
	guard(func() error { d.out.WriteString("\x1b[?25h"); return nil })
	guard(d.ExitRawMode)
	return firstErr
}

// EnableMouseTracking enables the given mouse mode with SGR-extended
// coordinates.
func (d *Driver) EnableMouseTracking(mode MouseMode) {
	switch mode {
	case MousePress:
		d.out.WriteString("\x1b[?1000h\x1b[?1006h")
	case MouseDrag:
		d.out.WriteString("\x1b[?1002h\x1b[?1006h")
	case MouseAny:
		d.out.WriteString("\x1b[?1003h\x1b[?1006h")
	}
}

// DisableMouseTracking disables all mouse-tracking modes.
func (d *Driver) DisableMouseTracking() {
	d.out.WriteString("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")
}

// EnableFocusReporting enables ESC[I/ESC[O focus-change notifications.
func (d *Driver) EnableFocusReporting() { d.out.WriteString("\x1b[?1004h") }

// DisableFocusReporting disables focus-change notifications.
func (d *Driver) DisableFocusReporting() { d.out.WriteString("\x1b[?1004l") }

// SetCursorShape changes the cursor's rendered shape via DECSCUSR.
func (d *Driver) SetCursorShape(shape CursorShape) {
	fmt.Fprintf(d.out, "\x1b[%d q", int(shape))
}

// WriteClipboard copies data to the system clipboard via OSC 52.
func (d *Driver) WriteClipboard(data []byte) error {
	seq := osc52.New(string(data)).Clipboard()
	_, err := seq.WriteTo(d.out)
	return err
}

// WatchResize starts a SIGWINCH listener goroutine delivering Size
// values on the returned channel until Stop is called.
func (d *Driver) WatchResize() <-chan Size {
	signal.Notify(d.sigCh, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-d.stopCh:
				return
			case <-d.sigCh:
				if sz, err := d.Size(); err == nil {
					select {
					case d.resizeCh <- sz:
					default:
					}
				}
			}
		}
	}()
	return d.resizeCh
}

// Stop releases the resize-watching goroutine and signal registration.
func (d *Driver) Stop() {
	signal.Stop(d.sigCh)
	close(d.stopCh)
}
