// Package runtime implements the event -> message -> update -> frame
// dispatch loop: event routing to components, message-queue draining,
// command bookkeeping, and render-tick orchestration against a
// termframe BufferManager and framerate.Limiter.
package runtime

import "time"

// EventKind discriminates the Event union.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventFocus
	EventResize
	EventPaste
	EventTick
	EventCustom
)

// MouseAction enumerates the mouse event variants.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseClick
	MouseMove
	MouseDrag
	MouseScrollUp
	MouseScrollDown
)

// MouseButton enumerates which button a mouse event concerns.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// FocusAction enumerates the two focus event variants.
type FocusAction uint8

const (
	FocusGained FocusAction = iota
	FocusLost
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// Event is the tagged union consumed by the Runtime's dispatch rules
// and, per-component, by event_to_msg.
type Event struct {
	Kind EventKind
	Time time.Time

	// Key
	Key  string
	Char rune
	Mods Modifiers

	// Mouse
	MouseAction MouseAction
	Button      MouseButton
	X, Y        int

	// Focus
	FocusAction FocusAction

	// Resize
	Width, Height int

	// Paste
	PasteContent string

	// Custom
	Custom any
}
