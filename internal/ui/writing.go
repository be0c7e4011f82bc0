package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/timapple/writeapp/internal/apperr"
	"github.com/timapple/writeapp/internal/editor"
	"github.com/timapple/writeapp/internal/term"
)

type writingState struct {
	draftID string
	title   string
	scroll  int

	// deadline ends a timed flow session. Zero means untimed.
	deadline time.Time
}

// newDraft creates a draft and enters the writing screen on it.
func (u *UI) newDraft(body string) {
	d, err := u.drafts.Create(body)
	if err != nil {
		u.NotifyError(err)
		return
	}
	u.openDraft(d.ID)
}

// openDraft loads a draft into the editor and starts a session. A draft
// that fails to load stays closed; other drafts are unaffected.
func (u *UI) openDraft(id string) {
	d, err := u.drafts.Load(id)
	if err != nil {
		u.NotifyError(err)
		return
	}

	u.ed.Open(d.Body)
	u.writing = writingState{draftID: d.ID, title: d.Title}
	u.NotifyError(u.tracker.BeginSession(d.ID, u.ed.WordCount()))
	u.navigate(ScreenWriting)
}

// exitWriting flushes pending edits, closes the session, and returns to
// the menu.
func (u *UI) exitWriting() {
	u.flushDraft()
	u.NotifyError(u.tracker.EndSession(u.ed.WordCount()))
	u.writing.deadline = time.Time{}
	u.navigate(ScreenMenu)
}

// flushDraft persists the buffer if it has unsaved edits.
func (u *UI) flushDraft() {
	if u.writing.draftID == "" || !u.ed.Dirty() {
		return
	}
	if err := u.drafts.SaveBody(u.writing.draftID, u.ed.Text()); err != nil {
		u.NotifyError(err)
		return
	}
	u.ed.MarkSaved()
}

// saveCurrentBody is the editor's save hook (save chord).
func (u *UI) saveCurrentBody(body string) error {
	if u.writing.draftID == "" {
		return nil
	}
	if err := u.drafts.SaveBody(u.writing.draftID, body); err != nil {
		return err
	}
	u.Notify("saved")
	return nil
}

// extractToDraft is the editor's extract hook: the selection becomes a new
// draft right away, keeping the source text in place. The popup only names
// it; cancelling keeps the default title.
func (u *UI) extractToDraft(text string) error {
	d, err := u.drafts.Create(text)
	if err != nil {
		return err
	}
	u.Notify("draft created")
	u.openPopup("New draft from selection", d.Title, func(title string) {
		if strings.TrimSpace(title) == "" || title == d.Title {
			return
		}
		if err := u.drafts.Rename(d.ID, title); err != nil {
			u.NotifyError(err)
		}
	})
	return nil
}

// renameCurrent opens the rename popup for the open draft, flushing edits
// first so the rename never races an unsaved body.
func (u *UI) renameCurrent() {
	if u.writing.draftID == "" {
		return
	}
	u.flushDraft()
	id := u.writing.draftID
	u.openPopup("Rename draft", u.writing.title, func(title string) {
		if err := u.drafts.Rename(id, title); err != nil {
			if apperr.InvalidInput(err) {
				u.Notify("title cannot be empty")
				return
			}
			u.NotifyError(err)
			return
		}
		u.writing.title = strings.TrimSpace(title)
		u.Notify("renamed")
	})
}

func (u *UI) handleWritingKey(ev term.KeyEvent) {
	if ev.Ctrl && ev.Rune == 'r' {
		u.renameCurrent()
		return
	}

	// Escape leaves the view from Normal mode (or whenever Vim is off);
	// in Insert and Visual it falls through to the modal machine.
	if ev.Key == term.KeyEscape {
		if !u.ed.VimEnabled() || u.ed.Mode() == editor.ModeNormal {
			u.exitWriting()
			return
		}
	}

	eev, ok := toEditorEvent(ev)
	if !ok {
		return
	}
	if err := u.ed.Handle(eev); err != nil {
		// Persistence trouble is a warning; editing continues in memory.
		u.NotifyError(err)
	}
	u.autosave()
}

// autosave keeps the draft durable after every mutating operation.
func (u *UI) autosave() {
	u.flushDraft()
}

// tickCountdown ends a timed flow session at its deadline.
func (u *UI) tickCountdown(now time.Time) {
	if u.writing.deadline.IsZero() || now.Before(u.writing.deadline) {
		return
	}
	u.writing.deadline = time.Time{}
	u.NotifyError(u.tracker.EndSession(u.ed.WordCount()))
	u.Notify("flow session complete")
}

func toEditorEvent(ev term.KeyEvent) (editor.Event, bool) {
	switch ev.Key {
	case term.KeyEscape:
		return editor.Event{Key: editor.KeyEscape}, true
	case term.KeyEnter:
		return editor.Event{Key: editor.KeyEnter}, true
	case term.KeyBackspace:
		return editor.Event{Key: editor.KeyBackspace}, true
	case term.KeyDelete:
		return editor.Event{Key: editor.KeyDelete}, true
	case term.KeyLeft:
		return editor.Event{Key: editor.KeyLeft}, true
	case term.KeyRight:
		return editor.Event{Key: editor.KeyRight}, true
	case term.KeyUp:
		return editor.Event{Key: editor.KeyUp}, true
	case term.KeyDown:
		return editor.Event{Key: editor.KeyDown}, true
	case term.KeyHome:
		return editor.Event{Key: editor.KeyHome}, true
	case term.KeyEnd:
		return editor.Event{Key: editor.KeyEnd}, true
	}
	if ev.Rune != 0 {
		return editor.Event{Key: editor.KeyRune, Rune: ev.Rune, Ctrl: ev.Ctrl}, true
	}
	return editor.Event{}, false
}

func (u *UI) drawWriting() {
	w, h := u.backend.Size()
	settings := u.settings.Current()

	textHeight := h
	if !settings.FocusMode {
		textHeight = h - 1
	}

	textWidth := w
	previewX := -1
	if settings.PreviewMode && w >= 40 {
		textWidth = w / 2
		previewX = textWidth + 1
	}
	if textWidth > u.theme.MaxTextWidth {
		textWidth = u.theme.MaxTextWidth
	}

	buf := u.ed.Buffer()
	cursor := buf.Cursor()

	// Keep the cursor row on screen.
	if cursor.Line < u.writing.scroll {
		u.writing.scroll = cursor.Line
	}
	if cursor.Line >= u.writing.scroll+textHeight {
		u.writing.scroll = cursor.Line - textHeight + 1
	}

	lines := buf.Lines()
	for row := 0; row < textHeight; row++ {
		idx := u.writing.scroll + row
		if idx >= len(lines) {
			break
		}
		u.drawBufferLine(row, idx, lines[idx], textWidth, settings.FocusMode, cursor.Line)
	}

	if previewX >= 0 {
		for y := 0; y < textHeight; y++ {
			u.backend.SetCell(previewX-1, y, '│', u.dimStyle())
		}
		u.drawPreview(previewX+1, 0, w-previewX-2, textHeight)
	}

	if !settings.FocusMode {
		u.drawStatusLine(h - 1)
	}

	if u.popup == nil {
		line := []rune(lines[clampIdx(cursor.Line, len(lines))])
		col := cursor.Col
		if col > len(line) {
			col = len(line)
		}
		u.backend.ShowCursor(cellWidth(line[:col]), cursor.Line-u.writing.scroll)
	}
}

func clampIdx(i, n int) int {
	if n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func cellWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		w += runewidth.RuneWidth(r)
	}
	return w
}

func (u *UI) drawBufferLine(row, idx int, line string, width int, focus bool, cursorLine int) {
	base := term.Style{}
	if focus && idx != cursorLine {
		base = u.dimStyle()
	}

	x := 0
	for col, r := range []rune(line) {
		if x >= width {
			break
		}
		style := base
		if u.ed.Mode() == editor.ModeVisual && u.ed.Buffer().Selected(editor.Position{Line: idx, Col: col}) {
			style.Reverse = true
		}
		u.backend.SetCell(x, row, r, style)
		x += runewidth.RuneWidth(r)
	}
}

func (u *UI) drawStatusLine(y int) {
	w, _ := u.backend.Size()

	left := u.writing.title
	if u.ed.Dirty() {
		left += " *"
	}
	u.drawText(1, y, u.dimStyle(), left)

	right := fmt.Sprintf("%d words", u.ed.WordCount())
	if u.ed.VimEnabled() {
		right = u.ed.Mode().DisplayName() + " · " + right
	}
	if !u.writing.deadline.IsZero() {
		remaining := u.writing.deadline.Sub(u.now()).Round(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		right += fmt.Sprintf(" · %02d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)
	}
	u.drawText(w-runewidth.StringWidth(right)-1, y, u.accentStyle(), right)

	if msg := u.status.message(); msg != "" {
		u.drawCentered(y, u.dimStyle(), msg)
	}
}
