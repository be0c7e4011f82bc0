package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timapple/writeapp/internal/config"
	"github.com/timapple/writeapp/internal/draft"
	"github.com/timapple/writeapp/internal/flow"
	"github.com/timapple/writeapp/internal/storage"
	"github.com/timapple/writeapp/internal/term"
)

type fixture struct {
	ui       *UI
	backend  *term.Null
	drafts   *draft.Store
	tracker  *flow.Tracker
	settings *config.Manager
	clock    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := storage.New(t.TempDir())
	require.NoError(t, fs.Init())

	f := &fixture{
		backend:  term.NewNull(80, 24),
		drafts:   draft.NewStore(fs, "md"),
		tracker:  flow.NewTracker(fs),
		settings: config.NewManager(fs),
		clock:    time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.settings.Load())

	f.ui = New(Deps{
		Backend:  f.backend,
		Drafts:   f.drafts,
		Tracker:  f.tracker,
		Settings: f.settings,
		Theme:    config.DefaultTheme(),
		Now:      func() time.Time { return f.clock },
	})
	return f
}

func (f *fixture) key(ev term.KeyEvent) { f.ui.HandleEvent(ev) }

func (f *fixture) typeRunes(s string) {
	for _, r := range s {
		f.key(term.KeyEvent{Rune: r})
	}
}

func (f *fixture) press(k term.SpecialKey) { f.key(term.KeyEvent{Key: k}) }

func TestSplashLeadsToMenu(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, ScreenSplash, f.ui.Active())

	f.typeRunes("x")
	assert.Equal(t, ScreenMenu, f.ui.Active())
}

func TestMenuQuit(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" q")
	assert.True(t, f.ui.QuitRequested())
}

func TestNewDraftTypeAndExit(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" n")
	require.Equal(t, ScreenWriting, f.ui.Active())

	f.typeRunes("hello world")
	f.press(term.KeyEscape)
	assert.Equal(t, ScreenMenu, f.ui.Active())

	// The draft is durable and the session was recorded.
	list := f.drafts.List()
	require.Len(t, list, 1)
	d, err := f.drafts.Load(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", d.Body)

	history := f.tracker.History()
	require.Len(t, history, 1)
	assert.Equal(t, list[0].ID, history[0].DraftID)
	assert.Equal(t, 2, history[0].WordsEnd)
}

func TestAutosaveKeepsDraftDurable(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" n")
	f.typeRunes("typed")

	// Durable without any explicit save or exit.
	list := f.drafts.List()
	require.Len(t, list, 1)
	d, err := f.drafts.Load(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "typed", d.Body)
}

func TestVimVisualYankScenario(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.settings.Update(config.Settings{VimMode: true, DefaultExtension: "md"}))

	f.typeRunes(" n")
	f.typeRunes("i")
	f.typeRunes("hello world")
	f.press(term.KeyEscape)
	f.typeRunes("gg")
	f.typeRunes("v")
	f.typeRunes("llll")
	f.typeRunes("y")

	assert.Equal(t, "hello", f.ui.Editor().Buffer().Yanked())
}

func TestEscapeInInsertReturnsToNormalNotMenu(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.settings.Update(config.Settings{VimMode: true, DefaultExtension: "md"}))

	f.typeRunes(" n")
	f.typeRunes("i")
	f.press(term.KeyEscape)
	assert.Equal(t, ScreenWriting, f.ui.Active())

	f.press(term.KeyEscape)
	assert.Equal(t, ScreenMenu, f.ui.Active())
}

func TestDraftsScreenOpenAndDelete(t *testing.T) {
	f := newFixture(t)
	d, err := f.drafts.Create("existing body")
	require.NoError(t, err)

	f.typeRunes(" d")
	require.Equal(t, ScreenDrafts, f.ui.Active())

	f.press(term.KeyEnter)
	require.Equal(t, ScreenWriting, f.ui.Active())
	assert.Equal(t, "existing body", f.ui.Editor().Text())

	f.press(term.KeyEscape)
	f.typeRunes("d")
	f.typeRunes("d")
	assert.Empty(t, f.drafts.List())
	_, err = f.drafts.Load(d.ID)
	assert.Error(t, err)
}

func TestRenameThroughPopup(t *testing.T) {
	f := newFixture(t)
	_, err := f.drafts.Create("some body")
	require.NoError(t, err)

	f.typeRunes(" d")
	f.typeRunes("r")

	// Clear the prefilled title, then type the new one.
	for i := 0; i < 60; i++ {
		f.press(term.KeyBackspace)
	}
	f.typeRunes("Fresh Title")
	f.press(term.KeyEnter)

	list := f.drafts.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Fresh Title", list[0].Title)
}

func TestPopupEscapeCancelsRename(t *testing.T) {
	f := newFixture(t)
	_, err := f.drafts.Create("Keep Title\nbody")
	require.NoError(t, err)

	f.typeRunes(" d")
	f.typeRunes("r")
	f.typeRunes("garbage")
	f.press(term.KeyEscape)

	list := f.drafts.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Keep Title", list[0].Title)
	// Still on the drafts screen, not the menu.
	assert.Equal(t, ScreenDrafts, f.ui.Active())
}

func TestRenameWhileWritingFlushesFirst(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" n")
	f.typeRunes("unsaved words")

	f.key(term.KeyEvent{Rune: 'r', Ctrl: true})
	f.typeRunes("X")
	f.press(term.KeyEnter)

	list := f.drafts.List()
	require.Len(t, list, 1)
	d, err := f.drafts.Load(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "unsaved words", d.Body)
}

func TestSettingsToggleVimMode(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" s")
	require.Equal(t, ScreenSettings, f.ui.Active())

	f.press(term.KeyEnter)
	assert.True(t, f.settings.Current().VimMode)
	assert.True(t, f.ui.Editor().VimEnabled())

	f.press(term.KeyEnter)
	assert.False(t, f.settings.Current().VimMode)
	assert.False(t, f.ui.Editor().VimEnabled())
}

func TestTimedFlowSessionEndsAtDeadline(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" f")
	require.Equal(t, ScreenFlow, f.ui.Active())

	f.typeRunes("1")
	require.Equal(t, ScreenWriting, f.ui.Active())
	f.typeRunes("some words here")

	f.clock = f.clock.Add(5*time.Minute + time.Second)
	f.ui.Tick()

	history := f.tracker.History()
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].WordsEnd)
	// Writing continues after the timer fires.
	assert.Equal(t, ScreenWriting, f.ui.Active())
}

func TestStatusMessageExpires(t *testing.T) {
	f := newFixture(t)
	f.ui.Notify("hello")
	assert.Equal(t, "hello", f.ui.status.message())

	f.clock = f.clock.Add(2 * time.Second)
	f.ui.Tick()
	assert.Equal(t, "hello", f.ui.status.message())

	f.clock = f.clock.Add(2 * time.Second)
	f.ui.Tick()
	assert.Equal(t, "", f.ui.status.message())
}

func TestExtractSelectionCreatesDraft(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.settings.Update(config.Settings{VimMode: true, DefaultExtension: "md"}))

	f.typeRunes(" n")
	f.typeRunes("i")
	f.typeRunes("pull this out")
	f.press(term.KeyEscape)
	f.typeRunes("gg")
	f.typeRunes("v")
	f.typeRunes("lll")
	f.typeRunes("n")

	// Rename the already-created draft through the popup, clearing the
	// prefilled default title first.
	for i := 0; i < 60; i++ {
		f.press(term.KeyBackspace)
	}
	f.typeRunes("Extracted")
	f.press(term.KeyEnter)

	var found bool
	for _, d := range f.drafts.List() {
		if d.Title == "Extracted" {
			found = true
			loaded, err := f.drafts.Load(d.ID)
			require.NoError(t, err)
			assert.Equal(t, "pull", loaded.Body)
		}
	}
	assert.True(t, found)
	// Source text is untouched.
	assert.Equal(t, "pull this out", f.ui.Editor().Text())
}

func TestExtractSelectionSurvivesCancelledNaming(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.settings.Update(config.Settings{VimMode: true, DefaultExtension: "md"}))

	f.typeRunes(" n")
	f.typeRunes("i")
	f.typeRunes("keep this")
	f.press(term.KeyEscape)
	f.typeRunes("gg")
	f.typeRunes("v")
	f.typeRunes("lll")
	f.typeRunes("n")

	// Cancelling the naming popup must not undo the creation.
	f.press(term.KeyEscape)

	var found bool
	for _, d := range f.drafts.List() {
		loaded, err := f.drafts.Load(d.ID)
		require.NoError(t, err)
		if loaded.Body == "keep" {
			found = true
			assert.Equal(t, "keep", d.Title)
		}
	}
	assert.True(t, found)
}

func TestDrawWritingShowsStatusLine(t *testing.T) {
	f := newFixture(t)
	f.typeRunes(" n")
	f.typeRunes("one two three")
	f.ui.Draw()

	assert.Contains(t, f.backend.Row(0), "one two three")
	assert.Contains(t, f.backend.Row(23), "3 words")
}

func TestFocusModeHidesStatusLine(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.settings.Toggle(func(s *config.Settings) { s.FocusMode = true }))

	f.typeRunes(" n")
	f.typeRunes("words")
	f.ui.Draw()

	assert.NotContains(t, f.backend.Row(23), "words")
}

func TestPreviewPaneRendersMarkdown(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.settings.Toggle(func(s *config.Settings) { s.PreviewMode = true }))

	f.typeRunes(" n")
	f.typeRunes("# Heading")
	f.ui.Draw()

	// Left pane shows the raw text, right pane the rendered heading.
	assert.Contains(t, f.backend.Row(0), "# Heading")
	assert.Contains(t, f.backend.Row(0), "│")
	assert.Contains(t, f.backend.Row(0), "Heading")
}
