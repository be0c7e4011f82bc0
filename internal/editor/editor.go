package editor

// Hooks are the editor's outbound callbacks. All are optional.
type Hooks struct {
	// Save persists the buffer. Fired by the save chord.
	Save func(body string) error

	// Extract creates a new draft from the selected text.
	Extract func(text string) error

	// Yank mirrors register writes, e.g. to the system clipboard.
	Yank func(text string)

	// TogglePreview and ToggleFocus flip view settings.
	TogglePreview func()
	ToggleFocus   func()
}

// Editor drives one open draft: the modal machine plus the buffer. It is
// not safe for concurrent use; the event loop owns it.
type Editor struct {
	state State
	buf   *Buffer
	hooks Hooks

	dirty bool
}

// New creates an editor with the given wrap width and Vim setting.
func New(vimEnabled bool, wrapWidth int, hooks Hooks) *Editor {
	return &Editor{
		state: NewState(vimEnabled),
		buf:   NewBuffer("", wrapWidth),
		hooks: hooks,
	}
}

// Open loads a draft body, resetting mode, cursor and selection. Text
// wider than the wrap limit (written externally) is reflowed on open.
func (e *Editor) Open(body string) {
	e.buf.SetText(body)
	e.buf.Reflow()
	e.state = NewState(e.state.VimEnabled)
	e.dirty = false
}

// SetVimEnabled applies a settings change, resetting the mode.
func (e *Editor) SetVimEnabled(on bool) {
	if e.state.VimEnabled == on {
		return
	}
	e.buf.ClearSelection()
	e.state = NewState(on)
}

// Mode returns the current editing mode.
func (e *Editor) Mode() Mode { return e.state.Mode }

// VimEnabled reports the modal setting.
func (e *Editor) VimEnabled() bool { return e.state.VimEnabled }

// Buffer exposes the underlying text buffer for rendering.
func (e *Editor) Buffer() *Buffer { return e.buf }

// Text returns the current body.
func (e *Editor) Text() string { return e.buf.Text() }

// WordCount counts words in the buffer.
func (e *Editor) WordCount() int { return e.buf.WordCount() }

// Dirty reports whether the buffer changed since the last open or save.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkSaved clears the dirty flag after an external save.
func (e *Editor) MarkSaved() { e.dirty = false }

// Handle runs one event through the machine and applies its effects.
// The returned error comes from the save or extract hooks.
func (e *Editor) Handle(ev Event) error {
	next, effects := Transition(e.state, ev)
	e.state = next

	var err error
	for _, fx := range effects {
		if fxErr := e.apply(fx); fxErr != nil && err == nil {
			err = fxErr
		}
	}
	return err
}

func (e *Editor) apply(fx Effect) error {
	switch fx.Kind {
	case EffInsertRune:
		e.buf.InsertRune(fx.Rune)
		e.dirty = true
	case EffNewline:
		e.buf.InsertNewline()
		e.dirty = true
	case EffBackspace:
		e.buf.Backspace()
		e.dirty = true
	case EffDeleteChar:
		e.buf.DeleteChar()
		e.dirty = true
	case EffDeleteLine:
		e.buf.DeleteLine()
		e.dirty = true
		e.mirrorYank()
	case EffMoveLeft:
		e.buf.MoveLeft()
	case EffMoveRight:
		e.buf.MoveRight()
	case EffMoveUp:
		e.buf.MoveUp()
	case EffMoveDown:
		e.buf.MoveDown()
	case EffMoveLineStart:
		e.buf.MoveLineStart()
	case EffMoveLineEnd:
		e.buf.MoveLineEnd()
	case EffMoveWordForward:
		e.buf.MoveWordForward()
	case EffMoveWordBackward:
		e.buf.MoveWordBackward()
	case EffMoveFileStart:
		e.buf.MoveFileStart()
	case EffMoveFileEnd:
		e.buf.MoveFileEnd()
	case EffStartSelection:
		e.buf.StartSelection()
	case EffClearSelection:
		e.buf.ClearSelection()
	case EffYankLine:
		e.buf.YankLine()
		e.mirrorYank()
	case EffYankSelection:
		e.buf.YankSelection()
		e.mirrorYank()
	case EffDeleteSelection:
		e.buf.DeleteSelection()
		e.dirty = true
		e.mirrorYank()
	case EffExtractSelection:
		text := e.buf.SelectedText()
		if text != "" && e.hooks.Extract != nil {
			return e.hooks.Extract(text)
		}
	case EffPaste:
		e.buf.Paste()
		e.dirty = true
	case EffTogglePreview:
		if e.hooks.TogglePreview != nil {
			e.hooks.TogglePreview()
		}
	case EffToggleFocus:
		if e.hooks.ToggleFocus != nil {
			e.hooks.ToggleFocus()
		}
	case EffSave:
		if e.hooks.Save != nil {
			if err := e.hooks.Save(e.buf.Text()); err != nil {
				return err
			}
			e.dirty = false
		}
	}
	return nil
}

func (e *Editor) mirrorYank() {
	if e.hooks.Yank != nil && e.buf.Yanked() != "" {
		e.hooks.Yank(e.buf.Yanked())
	}
}
