package ui

import "github.com/timapple/writeapp/internal/term"

// popup is a modal single-line text input, used for renaming drafts and
// naming a draft extracted from a selection.
type popup struct {
	title  string
	input  []rune
	submit func(text string)
}

// openPopup shows a modal input over the current screen.
func (u *UI) openPopup(title, initial string, submit func(text string)) {
	u.popup = &popup{
		title:  title,
		input:  []rune(initial),
		submit: submit,
	}
}

// handlePopupKey feeds a key to the open popup, closing it on submit or
// cancel. Submit may open a fresh popup; that one is left in place.
func (u *UI) handlePopupKey(ev term.KeyEvent) {
	p := u.popup

	switch ev.Key {
	case term.KeyEscape:
		u.popup = nil
		return
	case term.KeyEnter:
		u.popup = nil
		if p.submit != nil {
			p.submit(string(p.input))
		}
		return
	case term.KeyBackspace:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
		return
	}
	if ev.Rune != 0 && !ev.Ctrl {
		p.input = append(p.input, ev.Rune)
	}
}
