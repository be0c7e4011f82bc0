package ui

// The splash shows briefly at launch; any key moves on to the menu.

func (u *UI) drawSplash() {
	_, h := u.backend.Size()
	mid := h / 2

	u.drawCentered(mid-2, u.accentStyle(), "W R I T E A P P")
	u.drawCentered(mid, u.dimStyle(), "a quiet place to write")
	u.drawCentered(mid+2, u.dimStyle(), "by Tim Apple")
	u.drawCentered(h-2, u.dimStyle(), "press any key")
}
