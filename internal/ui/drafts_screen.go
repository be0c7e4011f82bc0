package ui

import (
	"fmt"
	"strings"

	"github.com/timapple/writeapp/internal/apperr"
	"github.com/timapple/writeapp/internal/draft"
	"github.com/timapple/writeapp/internal/term"
)

type draftsState struct {
	cursor int
}

func (u *UI) handleDraftsKey(ev term.KeyEvent) {
	items := u.drafts.List()
	if u.draftsView.cursor >= len(items) && len(items) > 0 {
		u.draftsView.cursor = len(items) - 1
	}

	switch ev.Key {
	case term.KeyEscape:
		u.navigate(ScreenMenu)
		return
	case term.KeyUp:
		u.draftsCursorUp()
		return
	case term.KeyDown:
		u.draftsCursorDown(len(items))
		return
	case term.KeyEnter:
		if len(items) > 0 {
			u.openDraft(items[u.draftsView.cursor].ID)
		}
		return
	case term.KeyDelete:
		u.deleteSelected(items)
		return
	}

	switch ev.Rune {
	case 'k':
		u.draftsCursorUp()
	case 'j':
		u.draftsCursorDown(len(items))
	case 'n':
		u.newDraft("")
	case 'd':
		u.deleteSelected(items)
	case 'r':
		u.renameSelected(items)
	case 'q':
		u.navigate(ScreenMenu)
	}
}

func (u *UI) draftsCursorUp() {
	if u.draftsView.cursor > 0 {
		u.draftsView.cursor--
	}
}

func (u *UI) draftsCursorDown(n int) {
	if u.draftsView.cursor < n-1 {
		u.draftsView.cursor++
	}
}

func (u *UI) deleteSelected(items []draft.Draft) {
	if len(items) == 0 {
		return
	}
	err := u.drafts.Delete(items[u.draftsView.cursor].ID)
	if err != nil && !apperr.NotFound(err) {
		u.NotifyError(err)
		return
	}
	u.Notify("draft deleted")
	if u.draftsView.cursor > 0 {
		u.draftsView.cursor--
	}
}

func (u *UI) renameSelected(items []draft.Draft) {
	if len(items) == 0 {
		return
	}
	item := items[u.draftsView.cursor]
	u.openPopup("Rename draft", item.Title, func(title string) {
		if err := u.drafts.Rename(item.ID, title); err != nil {
			if apperr.InvalidInput(err) {
				u.Notify("title cannot be empty")
				return
			}
			u.NotifyError(err)
			return
		}
		u.Notify("renamed")
	})
}

func (u *UI) drawDrafts() {
	w, h := u.backend.Size()

	u.drawText(2, 1, u.accentStyle(), "Drafts")
	u.drawText(2, h-1, u.dimStyle(), "enter open · r rename · d delete · n new · esc back")

	items := u.drafts.List()
	if len(items) == 0 {
		u.drawText(4, 3, u.dimStyle(), "no drafts yet")
		return
	}
	if u.draftsView.cursor >= len(items) {
		u.draftsView.cursor = len(items) - 1
	}

	for i, d := range items {
		y := 3 + i
		if y >= h-2 {
			break
		}
		style := term.Style{}
		prefix := "  "
		if i == u.draftsView.cursor {
			style = u.accentStyle()
			prefix = "> "
		}
		title := d.Title
		if strings.TrimSpace(title) == "" {
			title = "(untitled)"
		}
		line := fmt.Sprintf("%s%-40s %s", prefix, truncate(title, 40), d.ModifiedAt.Format("2006-01-02 15:04"))
		u.drawText(2, y, style, truncate(line, w-4))
	}
}
