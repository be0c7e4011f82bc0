package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal is the tcell-backed Backend.
type Terminal struct {
	screen tcell.Screen
}

var _ Backend = (*Terminal)(nil)

// NewTerminal allocates a terminal backend. Init must be called before use.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.Clear()
	return nil
}

func (t *Terminal) Fini() { t.screen.Fini() }

func (t *Terminal) Size() (int, int) { return t.screen.Size() }

func (t *Terminal) Clear() { t.screen.Clear() }

func (t *Terminal) SetCell(x, y int, r rune, style Style) {
	t.screen.SetContent(x, y, r, nil, toTcell(style))
}

func (t *Terminal) ShowCursor(x, y int) { t.screen.ShowCursor(x, y) }

func (t *Terminal) HideCursor() { t.screen.HideCursor() }

func (t *Terminal) Show() { t.screen.Show() }

func (t *Terminal) PostWake() {
	// PostEvent can fail only when the queue is full; a wake is then
	// already pending, so dropping this one is fine.
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch tev := ev.(type) {
		case *tcell.EventKey:
			return translateKey(tev)
		case *tcell.EventResize:
			w, h := tev.Size()
			return ResizeEvent{Width: w, Height: h}
		case *tcell.EventInterrupt:
			return WakeEvent{}
		}
	}
}

// translateKey normalizes tcell keys. Enter, Tab and Backspace collide
// with the Ctrl range in tcell's encoding, so specials go first.
func translateKey(ev *tcell.EventKey) KeyEvent {
	switch ev.Key() {
	case tcell.KeyEscape:
		return KeyEvent{Key: KeyEscape}
	case tcell.KeyEnter:
		return KeyEvent{Key: KeyEnter}
	case tcell.KeyTab:
		return KeyEvent{Key: KeyTab}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Key: KeyBackspace}
	case tcell.KeyDelete:
		return KeyEvent{Key: KeyDelete}
	case tcell.KeyLeft:
		return KeyEvent{Key: KeyLeft}
	case tcell.KeyRight:
		return KeyEvent{Key: KeyRight}
	case tcell.KeyUp:
		return KeyEvent{Key: KeyUp}
	case tcell.KeyDown:
		return KeyEvent{Key: KeyDown}
	case tcell.KeyHome:
		return KeyEvent{Key: KeyHome}
	case tcell.KeyEnd:
		return KeyEvent{Key: KeyEnd}
	case tcell.KeyPgUp:
		return KeyEvent{Key: KeyPgUp}
	case tcell.KeyPgDn:
		return KeyEvent{Key: KeyPgDn}
	}

	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyEvent{Rune: rune('a' + k - tcell.KeyCtrlA), Ctrl: true}
	}

	if ev.Key() == tcell.KeyRune {
		return KeyEvent{Rune: ev.Rune(), Ctrl: ev.Modifiers()&tcell.ModCtrl != 0}
	}
	return KeyEvent{}
}

func toTcell(style Style) tcell.Style {
	st := tcell.StyleDefault
	if style.FG != "" {
		st = st.Foreground(tcell.GetColor(string(style.FG)))
	}
	if style.BG != "" {
		st = st.Background(tcell.GetColor(string(style.BG)))
	}
	if style.Bold {
		st = st.Bold(true)
	}
	if style.Italic {
		st = st.Italic(true)
	}
	if style.Underline {
		st = st.Underline(true)
	}
	if style.Reverse {
		st = st.Reverse(true)
	}
	if style.Dim {
		st = st.Dim(true)
	}
	return st
}
