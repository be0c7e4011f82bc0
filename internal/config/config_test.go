package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timapple/writeapp/internal/apperr"
	"github.com/timapple/writeapp/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *storage.Store) {
	t.Helper()
	store := storage.New(t.TempDir())
	require.NoError(t, store.Init())
	return NewManager(store), store
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.Load())
	assert.Equal(t, DefaultSettings(), m.Current())
}

func TestSettingsRoundTrip(t *testing.T) {
	m, store := newTestManager(t)

	want := Settings{VimMode: true, FocusMode: true, PreviewMode: false, DefaultExtension: "txt"}
	require.NoError(t, m.Update(want))

	// Simulate a restart: a fresh manager against the same store.
	reloaded := NewManager(store)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, want, reloaded.Current())
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	m, store := newTestManager(t)
	require.NoError(t, os.WriteFile(store.SettingsPath(), []byte("{{{"), 0o644))

	err := m.Load()
	assert.True(t, apperr.CorruptData(err))
	assert.Equal(t, DefaultSettings(), m.Current())
}

func TestToggleNotifiesCallbacks(t *testing.T) {
	m, _ := newTestManager(t)

	var seen []Settings
	m.OnChange(func(s Settings) { seen = append(seen, s) })

	require.NoError(t, m.Toggle(func(s *Settings) { s.VimMode = !s.VimMode }))
	require.NoError(t, m.Toggle(func(s *Settings) { s.PreviewMode = true }))

	require.Len(t, seen, 2)
	assert.True(t, seen[0].VimMode)
	assert.True(t, seen[1].PreviewMode)
}

func TestExtensionFallback(t *testing.T) {
	assert.Equal(t, "md", Settings{}.Extension())
	assert.Equal(t, "txt", Settings{DefaultExtension: "txt"}.Extension())
	assert.Equal(t, "md", Settings{DefaultExtension: ".md"}.Extension())
}

func TestLoadThemeDefaultsWhenAbsent(t *testing.T) {
	_, store := newTestManager(t)

	theme, err := LoadTheme(store)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme(), theme)
}

func TestLoadThemeMergesFile(t *testing.T) {
	_, store := newTestManager(t)
	require.NoError(t, os.WriteFile(store.ThemePath(), []byte("wrap_width = 72\naccent = \"cyan\"\n"), 0o644))

	theme, err := LoadTheme(store)
	require.NoError(t, err)
	assert.Equal(t, 72, theme.WrapWidth)
	assert.Equal(t, "cyan", theme.Accent)
	assert.Equal(t, 100, theme.MaxTextWidth)
}

func TestLoadThemeCorrupt(t *testing.T) {
	_, store := newTestManager(t)
	require.NoError(t, os.WriteFile(store.ThemePath(), []byte("wrap_width = [broken"), 0o644))

	theme, err := LoadTheme(store)
	assert.True(t, apperr.CorruptData(err))
	assert.Equal(t, DefaultTheme(), theme)
}
