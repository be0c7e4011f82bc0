package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/timapple/writeapp/internal/term"
)

func (u *UI) accentStyle() term.Style {
	return term.Style{FG: term.Color(u.theme.Accent), Bold: true}
}

func (u *UI) dimStyle() term.Style {
	return term.Style{FG: term.Color(u.theme.DimText)}
}

// drawText paints a string starting at x,y and returns the x after the
// last cell, accounting for wide runes.
func (u *UI) drawText(x, y int, style term.Style, text string) int {
	w, _ := u.backend.Size()
	for _, r := range text {
		if x >= w {
			break
		}
		u.backend.SetCell(x, y, r, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// drawCentered paints text horizontally centered on row y.
func (u *UI) drawCentered(y int, style term.Style, text string) {
	w, _ := u.backend.Size()
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	u.drawText(x, y, style, text)
}

// drawHRule paints a horizontal line across [x, x+width) on row y.
func (u *UI) drawHRule(x, y, width int, style term.Style) {
	for i := 0; i < width; i++ {
		u.backend.SetCell(x+i, y, '─', style)
	}
}

// drawBox paints a bordered rectangle.
func (u *UI) drawBox(x, y, width, height int, style term.Style) {
	for i := 1; i < width-1; i++ {
		u.backend.SetCell(x+i, y, '─', style)
		u.backend.SetCell(x+i, y+height-1, '─', style)
	}
	for j := 1; j < height-1; j++ {
		u.backend.SetCell(x, y+j, '│', style)
		u.backend.SetCell(x+width-1, y+j, '│', style)
		for i := 1; i < width-1; i++ {
			u.backend.SetCell(x+i, y+j, ' ', style)
		}
	}
	u.backend.SetCell(x, y, '┌', style)
	u.backend.SetCell(x+width-1, y, '┐', style)
	u.backend.SetCell(x, y+height-1, '└', style)
	u.backend.SetCell(x+width-1, y+height-1, '┘', style)
}

func (u *UI) drawPopup() {
	w, h := u.backend.Size()
	boxW := w * 2 / 3
	if boxW < 20 {
		boxW = w - 2
	}
	boxH := 5
	x := (w - boxW) / 2
	y := (h - boxH) / 2

	u.drawBox(x, y, boxW, boxH, u.accentStyle())
	u.drawText(x+2, y+1, u.accentStyle(), u.popup.title)

	input := string(u.popup.input)
	// Keep the tail visible when the input outgrows the box.
	avail := boxW - 4
	for runewidth.StringWidth(input) > avail && len(input) > 0 {
		input = string([]rune(input)[1:])
	}
	end := u.drawText(x+2, y+3, term.Style{}, input)
	u.backend.ShowCursor(end, y+3)
}
