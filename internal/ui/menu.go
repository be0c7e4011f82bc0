package ui

import "github.com/timapple/writeapp/internal/term"

type menuState struct {
	cursor int
}

type menuItem struct {
	key   rune
	label string
}

var menuItems = []menuItem{
	{'n', "New draft"},
	{'d', "Drafts"},
	{'f', "Flow"},
	{'s', "Settings"},
	{'q', "Quit"},
}

func (u *UI) handleMenuKey(ev term.KeyEvent) {
	switch ev.Key {
	case term.KeyUp:
		if u.menu.cursor > 0 {
			u.menu.cursor--
		}
		return
	case term.KeyDown:
		if u.menu.cursor < len(menuItems)-1 {
			u.menu.cursor++
		}
		return
	case term.KeyEnter:
		u.menuSelect(menuItems[u.menu.cursor].key)
		return
	}

	switch ev.Rune {
	case 'k':
		if u.menu.cursor > 0 {
			u.menu.cursor--
		}
	case 'j':
		if u.menu.cursor < len(menuItems)-1 {
			u.menu.cursor++
		}
	case 'n', 'd', 'f', 's', 'q':
		u.menuSelect(ev.Rune)
	}
}

func (u *UI) menuSelect(key rune) {
	switch key {
	case 'n':
		u.newDraft("")
	case 'd':
		u.navigate(ScreenDrafts)
	case 'f':
		u.navigate(ScreenFlow)
	case 's':
		u.navigate(ScreenSettings)
	case 'q':
		u.quit = true
	}
}

func (u *UI) drawMenu() {
	_, h := u.backend.Size()
	top := h/2 - len(menuItems)

	u.drawCentered(top-2, u.accentStyle(), "WriteApp")

	for i, item := range menuItems {
		style := u.dimStyle()
		prefix := "  "
		if i == u.menu.cursor {
			style = u.accentStyle()
			prefix = "> "
		}
		u.drawCentered(top+i*2, style, prefix+"["+string(item.key)+"] "+item.label)
	}

	if msg := u.status.message(); msg != "" {
		u.drawCentered(h-2, u.dimStyle(), msg)
	}
}
