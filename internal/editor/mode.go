// Package editor implements the modal editing core: the Normal/Insert/Visual
// state machine, the text buffer with hard-wrap enforcement, and the yank
// register. The machine itself is a pure transition function over a tagged
// mode value; all text mutation happens through effects applied by the
// Editor, which keeps every transition unit-testable without a terminal.
package editor

// Mode identifies the editing mode.
type Mode uint8

const (
	// ModeNormal interprets keys as commands (Vim normal mode).
	ModeNormal Mode = iota

	// ModeInsert inserts typed text at the cursor.
	ModeInsert

	// ModeVisual extends a selection from an anchor (character-wise).
	ModeVisual
)

// String returns the mode identifier.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeVisual:
		return "visual"
	default:
		return "unknown"
	}
}

// DisplayName returns the status-line name for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	default:
		return "?"
	}
}

// Key identifies a normalized key for the machine. The terminal layer maps
// raw events into these before dispatch.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

// Event is one normalized input event.
type Event struct {
	Key  Key
	Rune rune
	Ctrl bool
}

// RuneEvent builds a plain character event.
func RuneEvent(r rune) Event { return Event{Key: KeyRune, Rune: r} }

// CtrlEvent builds a control-chord event for the given letter.
func CtrlEvent(r rune) Event { return Event{Key: KeyRune, Rune: r, Ctrl: true} }

// State is the machine state threaded through Transition. It carries no text:
// the buffer is mutated only by effects.
type State struct {
	Mode Mode

	// VimEnabled gates all modal behavior. When false the machine is pinned
	// to an unmoded free-typing state equivalent to Insert.
	VimEnabled bool

	// Pending holds a half-typed operator ('d', 'y', 'g') awaiting its
	// doubling keystroke.
	Pending rune
}

// NewState returns the initial machine state for the given Vim setting.
// Vim starts in Normal; otherwise the machine is permanently insert-like.
func NewState(vimEnabled bool) State {
	if vimEnabled {
		return State{Mode: ModeNormal, VimEnabled: true}
	}
	return State{Mode: ModeInsert}
}

// EffectKind tags an effect value.
type EffectKind uint8

const (
	EffInsertRune EffectKind = iota
	EffNewline
	EffBackspace
	EffDeleteChar
	EffDeleteLine
	EffMoveLeft
	EffMoveRight
	EffMoveUp
	EffMoveDown
	EffMoveLineStart
	EffMoveLineEnd
	EffMoveWordForward
	EffMoveWordBackward
	EffMoveFileStart
	EffMoveFileEnd
	EffStartSelection
	EffClearSelection
	EffYankSelection
	EffYankLine
	EffDeleteSelection
	EffExtractSelection
	EffPaste
	EffTogglePreview
	EffToggleFocus
	EffSave
)

// Effect is one instruction produced by a transition, applied in order by
// the Editor.
type Effect struct {
	Kind EffectKind
	Rune rune
}

func eff(kind EffectKind) Effect { return Effect{Kind: kind} }
