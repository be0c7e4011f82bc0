// Package term abstracts the terminal behind a small backend interface so
// the UI and application loop can run against an in-memory screen in tests.
// The real implementation wraps tcell.
package term

// SpecialKey identifies non-rune keys.
type SpecialKey uint8

const (
	KeyNone SpecialKey = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
)

// Event is a terminal event: KeyEvent, ResizeEvent or WakeEvent.
type Event interface{ isEvent() }

// KeyEvent is one keypress. Rune is set for printable keys and for Ctrl
// chords (lowercase letter with Ctrl set); Key is set for special keys.
type KeyEvent struct {
	Rune rune
	Key  SpecialKey
	Ctrl bool
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

// WakeEvent is posted from other goroutines to interrupt PollEvent and
// force a redraw.
type WakeEvent struct{}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (WakeEvent) isEvent()   {}

// Color is a named color, resolved by the backend. Empty means default.
type Color string

// Style describes how a cell is drawn.
type Style struct {
	FG        Color
	BG        Color
	Bold      bool
	Italic    bool
	Underline bool
	Reverse   bool
	Dim       bool
}

// Backend is the drawing and input surface.
type Backend interface {
	// Init takes over the terminal. Fini must be called to restore it.
	Init() error
	Fini()

	Size() (width, height int)
	Clear()
	SetCell(x, y int, r rune, style Style)
	ShowCursor(x, y int)
	HideCursor()

	// Show flushes buffered cells to the terminal.
	Show()

	// PollEvent blocks for the next event. It returns nil after Fini.
	PollEvent() Event

	// PostWake queues a WakeEvent from any goroutine.
	PostWake()
}
