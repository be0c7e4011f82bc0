// Package ui implements the screens and the router between them. The menu
// is the hub: every other screen returns to it. Input events go only to
// the active screen, with an open popup intercepting first.
package ui

import (
	"time"

	"github.com/atotto/clipboard"

	"github.com/timapple/writeapp/internal/config"
	"github.com/timapple/writeapp/internal/draft"
	"github.com/timapple/writeapp/internal/editor"
	"github.com/timapple/writeapp/internal/flow"
	"github.com/timapple/writeapp/internal/term"
)

// ScreenID identifies the active screen.
type ScreenID uint8

const (
	ScreenSplash ScreenID = iota
	ScreenMenu
	ScreenWriting
	ScreenDrafts
	ScreenFlow
	ScreenSettings
)

// Deps are the collaborators the UI is constructed with.
type Deps struct {
	Backend  term.Backend
	Drafts   *draft.Store
	Tracker  *flow.Tracker
	Settings *config.Manager
	Theme    config.Theme

	// Now is swappable for tests. Defaults to time.Now.
	Now func() time.Time
}

// UI is the view router plus all screen state. Single-threaded: the event
// loop owns it.
type UI struct {
	backend  term.Backend
	drafts   *draft.Store
	tracker  *flow.Tracker
	settings *config.Manager
	theme    config.Theme
	now      func() time.Time

	ed     *editor.Editor
	active ScreenID
	quit   bool

	status status
	popup  *popup

	menu       menuState
	draftsView draftsState
	writing    writingState
	settingsUI settingsState
}

// New wires the UI. The editor is created here so its hooks can reach the
// status line and the draft store.
func New(deps Deps) *UI {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	u := &UI{
		backend:  deps.Backend,
		drafts:   deps.Drafts,
		tracker:  deps.Tracker,
		settings: deps.Settings,
		theme:    deps.Theme,
		now:      deps.Now,
		active:   ScreenSplash,
	}

	s := deps.Settings.Current()
	u.ed = editor.New(s.VimMode, deps.Theme.WrapWidth, editor.Hooks{
		Save:          u.saveCurrentBody,
		Extract:       u.extractToDraft,
		Yank:          mirrorClipboard,
		TogglePreview: u.togglePreview,
		ToggleFocus:   u.toggleFocus,
	})

	deps.Settings.OnChange(func(s config.Settings) {
		u.ed.SetVimEnabled(s.VimMode)
		u.drafts.SetExtension(s.Extension())
	})
	return u
}

// mirrorClipboard copies yanks to the system clipboard when one exists.
// Headless terminals have none; the register still works without it.
func mirrorClipboard(text string) {
	_ = clipboard.WriteAll(text)
}

// Active returns the current screen.
func (u *UI) Active() ScreenID { return u.active }

// QuitRequested reports whether the user asked to exit.
func (u *UI) QuitRequested() bool { return u.quit }

// Editor exposes the editor for the application shutdown path.
func (u *UI) Editor() *editor.Editor { return u.ed }

// HandleEvent routes one terminal event.
func (u *UI) HandleEvent(ev term.Event) {
	switch tev := ev.(type) {
	case term.KeyEvent:
		u.handleKey(tev)
	case term.ResizeEvent, term.WakeEvent:
		// Redraw only; the caller draws after every event.
	}
}

func (u *UI) handleKey(ev term.KeyEvent) {
	if u.popup != nil {
		u.handlePopupKey(ev)
		return
	}

	switch u.active {
	case ScreenSplash:
		u.active = ScreenMenu
	case ScreenMenu:
		u.handleMenuKey(ev)
	case ScreenWriting:
		u.handleWritingKey(ev)
	case ScreenDrafts:
		u.handleDraftsKey(ev)
	case ScreenFlow:
		u.handleFlowKey(ev)
	case ScreenSettings:
		u.handleSettingsKey(ev)
	}
}

// Tick advances time-driven state: transient message expiry and the timed
// flow countdown.
func (u *UI) Tick() {
	now := u.now()
	u.status.expire(now)
	u.tickCountdown(now)
}

// Notify shows a transient status message.
func (u *UI) Notify(text string) {
	u.status.set(text, u.now().Add(messageTTL))
}

// NotifyError surfaces an operational error as a status message.
func (u *UI) NotifyError(err error) {
	if err == nil {
		return
	}
	u.Notify("error: " + err.Error())
}

// Draw renders the active screen and any popup overlay, then flushes.
func (u *UI) Draw() {
	u.backend.Clear()
	u.backend.HideCursor()

	switch u.active {
	case ScreenSplash:
		u.drawSplash()
	case ScreenMenu:
		u.drawMenu()
	case ScreenWriting:
		u.drawWriting()
	case ScreenDrafts:
		u.drawDrafts()
	case ScreenFlow:
		u.drawFlow()
	case ScreenSettings:
		u.drawSettings()
	}

	if u.popup != nil {
		u.drawPopup()
	}
	u.backend.Show()
}

// navigate switches screens, preparing the target's state.
func (u *UI) navigate(to ScreenID) {
	if to == ScreenDrafts {
		u.draftsView.cursor = 0
	}
	u.active = to
}

// StartTimedFlow jumps straight into a timed writing session, used when
// the binary is launched with a flow duration.
func (u *UI) StartTimedFlow(d time.Duration) {
	u.startTimedFlow(d)
}

// Shutdown makes pending work durable before the process exits: the dirty
// draft is flushed and any open session is closed.
func (u *UI) Shutdown() {
	u.flushDraft()
	if _, open := u.tracker.InProgress(); open {
		_ = u.tracker.EndSession(u.ed.WordCount())
	}
}

func (u *UI) togglePreview() {
	u.NotifyError(u.settings.Toggle(func(s *config.Settings) {
		s.PreviewMode = !s.PreviewMode
	}))
}

func (u *UI) toggleFocus() {
	u.NotifyError(u.settings.Toggle(func(s *config.Settings) {
		s.FocusMode = !s.FocusMode
	}))
}
