package ui

import (
	"github.com/timapple/writeapp/internal/config"
	"github.com/timapple/writeapp/internal/term"
)

type settingsState struct {
	cursor int
}

type settingsItem struct {
	label  string
	value  func(config.Settings) string
	toggle func(*config.Settings)
}

var settingsItems = []settingsItem{
	{
		label:  "Vim mode",
		value:  func(s config.Settings) string { return onOff(s.VimMode) },
		toggle: func(s *config.Settings) { s.VimMode = !s.VimMode },
	},
	{
		label:  "Focus mode",
		value:  func(s config.Settings) string { return onOff(s.FocusMode) },
		toggle: func(s *config.Settings) { s.FocusMode = !s.FocusMode },
	},
	{
		label:  "Markdown preview",
		value:  func(s config.Settings) string { return onOff(s.PreviewMode) },
		toggle: func(s *config.Settings) { s.PreviewMode = !s.PreviewMode },
	},
	{
		label: "Draft extension",
		value: func(s config.Settings) string { return "." + s.Extension() },
		toggle: func(s *config.Settings) {
			if s.Extension() == "md" {
				s.DefaultExtension = "txt"
			} else {
				s.DefaultExtension = "md"
			}
		},
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (u *UI) handleSettingsKey(ev term.KeyEvent) {
	switch ev.Key {
	case term.KeyEscape:
		u.navigate(ScreenMenu)
		return
	case term.KeyUp:
		if u.settingsUI.cursor > 0 {
			u.settingsUI.cursor--
		}
		return
	case term.KeyDown:
		if u.settingsUI.cursor < len(settingsItems)-1 {
			u.settingsUI.cursor++
		}
		return
	case term.KeyEnter:
		u.toggleSetting(u.settingsUI.cursor)
		return
	}

	switch ev.Rune {
	case 'k':
		if u.settingsUI.cursor > 0 {
			u.settingsUI.cursor--
		}
	case 'j':
		if u.settingsUI.cursor < len(settingsItems)-1 {
			u.settingsUI.cursor++
		}
	case ' ':
		u.toggleSetting(u.settingsUI.cursor)
	case 'q':
		u.navigate(ScreenMenu)
	}
}

// toggleSetting flips one item and persists immediately.
func (u *UI) toggleSetting(i int) {
	if err := u.settings.Toggle(settingsItems[i].toggle); err != nil {
		u.NotifyError(err)
		return
	}
	u.Notify("settings saved")
}

func (u *UI) drawSettings() {
	_, h := u.backend.Size()

	u.drawText(2, 1, u.accentStyle(), "Settings")
	u.drawText(2, h-1, u.dimStyle(), "enter/space toggle · esc back")

	s := u.settings.Current()
	for i, item := range settingsItems {
		style := term.Style{}
		prefix := "  "
		if i == u.settingsUI.cursor {
			style = u.accentStyle()
			prefix = "> "
		}
		u.drawText(2, 3+i*2, style, prefix+item.label)
		u.drawText(30, 3+i*2, style, item.value(s))
	}

	if msg := u.status.message(); msg != "" {
		u.drawText(2, h-3, u.dimStyle(), msg)
	}
}
