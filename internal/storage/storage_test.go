package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timapple/writeapp/internal/apperr"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	require.NoError(t, s.Init())
	return s
}

func TestInitCreatesLayout(t *testing.T) {
	s := newTestStore(t)

	info, err := os.Stat(s.DraftsDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestTextRoundTrip(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.DraftsDir(), "a.md")

	require.NoError(t, s.WriteText(path, "hello\nworld"))

	got, err := s.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", got)
}

func TestReadMissingIsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ReadText(filepath.Join(s.DraftsDir(), "nope.md"))
	assert.True(t, apperr.NotFound(err))

	var v map[string]any
	err = s.ReadJSON(filepath.Join(s.base, "nope.json"), &v)
	assert.True(t, apperr.NotFound(err))
}

func TestReadJSONCorrupt(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.base, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var v map[string]any
	err := s.ReadJSON(path, &v)
	assert.True(t, apperr.CorruptData(err))
}

func TestJSONRoundTrip(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.base, "rec.json")

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, s.WriteJSON(path, record{Name: "x", Count: 3}))

	var got record
	require.NoError(t, s.ReadJSON(path, &got))
	assert.Equal(t, record{Name: "x", Count: 3}, got)
}

func TestRemoveMissingIsNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.Remove(filepath.Join(s.base, "gone.txt"))
	assert.True(t, apperr.NotFound(err))
}

func TestListDir(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteText(filepath.Join(s.DraftsDir(), "one.md"), "1"))
	require.NoError(t, s.WriteText(filepath.Join(s.DraftsDir(), "two.md"), "2"))
	require.NoError(t, os.MkdirAll(filepath.Join(s.DraftsDir(), "sub"), 0o755))

	names, err := s.ListDir(s.DraftsDir())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one.md", "two.md"}, names)
}

func TestListDirMissingIsEmpty(t *testing.T) {
	s := newTestStore(t)
	names, err := s.ListDir(filepath.Join(s.base, "absent"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestWriteAtomicLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(s.base, "out.txt")
	require.NoError(t, s.WriteText(path, "data"))

	entries, err := os.ReadDir(s.base)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestDefaultBaseDirOverride(t *testing.T) {
	t.Setenv(EnvDirOverride, "/tmp/custom-writeapp")
	assert.Equal(t, "/tmp/custom-writeapp", DefaultBaseDir())
}
