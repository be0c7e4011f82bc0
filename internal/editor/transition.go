package editor

import "unicode"

// Transition is the modal state machine. It is a pure function: given the
// current state and one input event it returns the next state and the
// ordered effects to apply. It never touches the buffer directly.
func Transition(st State, ev Event) (State, []Effect) {
	// Global chords work in every mode and when Vim is off.
	if ev.Ctrl {
		switch ev.Rune {
		case 'p':
			return st, []Effect{eff(EffTogglePreview)}
		case 'f':
			return st, []Effect{eff(EffToggleFocus)}
		case 's':
			return st, []Effect{eff(EffSave)}
		}
		return st, nil
	}

	if !st.VimEnabled {
		return st, freeTyping(ev)
	}

	switch st.Mode {
	case ModeInsert:
		return insertMode(st, ev)
	case ModeNormal:
		return normalMode(st, ev)
	case ModeVisual:
		return visualMode(st, ev)
	default:
		return st, nil
	}
}

// freeTyping handles the unmoded state used when Vim is disabled. Every
// printable rune inserts; Escape is ignored so the state is inescapable.
func freeTyping(ev Event) []Effect {
	switch ev.Key {
	case KeyRune:
		if unicode.IsPrint(ev.Rune) {
			return []Effect{{Kind: EffInsertRune, Rune: ev.Rune}}
		}
	case KeyEnter:
		return []Effect{eff(EffNewline)}
	case KeyBackspace:
		return []Effect{eff(EffBackspace)}
	case KeyDelete:
		return []Effect{eff(EffDeleteChar)}
	case KeyLeft:
		return []Effect{eff(EffMoveLeft)}
	case KeyRight:
		return []Effect{eff(EffMoveRight)}
	case KeyUp:
		return []Effect{eff(EffMoveUp)}
	case KeyDown:
		return []Effect{eff(EffMoveDown)}
	case KeyHome:
		return []Effect{eff(EffMoveLineStart)}
	case KeyEnd:
		return []Effect{eff(EffMoveLineEnd)}
	}
	return nil
}

func insertMode(st State, ev Event) (State, []Effect) {
	if ev.Key == KeyEscape {
		st.Mode = ModeNormal
		st.Pending = 0
		return st, nil
	}
	return st, freeTyping(ev)
}

func normalMode(st State, ev Event) (State, []Effect) {
	// A pending operator consumes the next key.
	if st.Pending != 0 {
		pending := st.Pending
		st.Pending = 0
		if ev.Key != KeyRune {
			return st, nil
		}
		switch {
		case pending == 'd' && ev.Rune == 'd':
			return st, []Effect{eff(EffDeleteLine)}
		case pending == 'y' && ev.Rune == 'y':
			return st, []Effect{eff(EffYankLine)}
		case pending == 'g' && ev.Rune == 'g':
			return st, []Effect{eff(EffMoveFileStart)}
		}
		return st, nil
	}

	if mv, ok := motion(ev); ok {
		return st, []Effect{eff(mv)}
	}

	if ev.Key != KeyRune {
		return st, nil
	}

	switch ev.Rune {
	case 'i':
		st.Mode = ModeInsert
		return st, nil
	case 'a':
		st.Mode = ModeInsert
		return st, []Effect{eff(EffMoveRight)}
	case 'I':
		st.Mode = ModeInsert
		return st, []Effect{eff(EffMoveLineStart)}
	case 'A':
		st.Mode = ModeInsert
		return st, []Effect{eff(EffMoveLineEnd)}
	case 'o':
		st.Mode = ModeInsert
		return st, []Effect{eff(EffMoveLineEnd), eff(EffNewline)}
	case 'O':
		st.Mode = ModeInsert
		return st, []Effect{eff(EffMoveLineStart), eff(EffNewline), eff(EffMoveUp)}
	case 'v':
		st.Mode = ModeVisual
		return st, []Effect{eff(EffStartSelection)}
	case 'x':
		return st, []Effect{eff(EffDeleteChar)}
	case 'p':
		return st, []Effect{eff(EffPaste)}
	case 'd', 'y', 'g':
		st.Pending = ev.Rune
		return st, nil
	case 'G':
		return st, []Effect{eff(EffMoveFileEnd)}
	}
	return st, nil
}

func visualMode(st State, ev Event) (State, []Effect) {
	if ev.Key == KeyEscape {
		st.Mode = ModeNormal
		st.Pending = 0
		return st, []Effect{eff(EffClearSelection)}
	}

	if st.Pending != 0 {
		pending := st.Pending
		st.Pending = 0
		if pending == 'g' && ev.Key == KeyRune && ev.Rune == 'g' {
			return st, []Effect{eff(EffMoveFileStart)}
		}
		return st, nil
	}

	if mv, ok := motion(ev); ok {
		return st, []Effect{eff(mv)}
	}

	if ev.Key != KeyRune {
		return st, nil
	}

	switch ev.Rune {
	case 'y':
		// Yank keeps the selection visible so it can be extracted too.
		return st, []Effect{eff(EffYankSelection)}
	case 'd':
		st.Mode = ModeNormal
		return st, []Effect{eff(EffDeleteSelection), eff(EffClearSelection)}
	case 'n':
		// Lift the selection into a new draft.
		st.Mode = ModeNormal
		return st, []Effect{eff(EffExtractSelection), eff(EffClearSelection)}
	case 'v':
		st.Mode = ModeNormal
		return st, []Effect{eff(EffClearSelection)}
	case 'G':
		return st, []Effect{eff(EffMoveFileEnd)}
	case 'g':
		st.Pending = 'g'
		return st, nil
	}
	return st, nil
}

// motion maps shared movement keys. Arrow keys work in every Vim mode
// alongside the letter motions.
func motion(ev Event) (EffectKind, bool) {
	switch ev.Key {
	case KeyLeft:
		return EffMoveLeft, true
	case KeyRight:
		return EffMoveRight, true
	case KeyUp:
		return EffMoveUp, true
	case KeyDown:
		return EffMoveDown, true
	case KeyHome:
		return EffMoveLineStart, true
	case KeyEnd:
		return EffMoveLineEnd, true
	case KeyRune:
		switch ev.Rune {
		case 'h':
			return EffMoveLeft, true
		case 'l':
			return EffMoveRight, true
		case 'k':
			return EffMoveUp, true
		case 'j':
			return EffMoveDown, true
		case '0':
			return EffMoveLineStart, true
		case '$':
			return EffMoveLineEnd, true
		case 'w':
			return EffMoveWordForward, true
		case 'b':
			return EffMoveWordBackward, true
		}
	}
	return 0, false
}
