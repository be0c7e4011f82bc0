package draft

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timapple/writeapp/internal/apperr"
	"github.com/timapple/writeapp/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Store) {
	t.Helper()
	fs := storage.New(t.TempDir())
	require.NoError(t, fs.Init())
	return NewStore(fs, "md"), fs
}

func TestCreateThenLoadReturnsExactBody(t *testing.T) {
	s, _ := newTestStore(t)

	body := "# My Essay\n\nFirst paragraph with some words."
	d, err := s.Create(body)
	require.NoError(t, err)
	require.NotEmpty(t, d.ID)
	assert.Equal(t, "My Essay", d.Title)

	got, err := s.Load(d.ID)
	require.NoError(t, err)
	assert.Equal(t, body, got.Body)
	assert.Equal(t, d.ID, got.ID)
}

func TestCreateEmptyBodyGetsTimestampTitle(t *testing.T) {
	s, _ := newTestStore(t)

	d, err := s.Create("")
	require.NoError(t, err)
	assert.Contains(t, d.Title, "Draft ")
}

func TestDeleteThenLoadIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	d, err := s.Create("body")
	require.NoError(t, err)

	require.NoError(t, s.Delete(d.ID))

	_, err = s.Load(d.ID)
	assert.True(t, apperr.NotFound(err))

	// Second delete reports NotFound; callers treat it as success-equivalent.
	err = s.Delete(d.ID)
	assert.True(t, apperr.NotFound(err))
}

func TestRenameReflectsInListImmediately(t *testing.T) {
	s, _ := newTestStore(t)

	d, err := s.Create("draft body")
	require.NoError(t, err)

	require.NoError(t, s.Rename(d.ID, "Better Title"))

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Better Title", list[0].Title)

	// Body is untouched by rename.
	got, err := s.Load(d.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft body", got.Body)
}

func TestRenameUnknownIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	assert.True(t, apperr.NotFound(s.Rename("nope", "Title")))
}

func TestRenameEmptyTitleIsInvalidInput(t *testing.T) {
	s, _ := newTestStore(t)
	d, err := s.Create("body")
	require.NoError(t, err)

	assert.True(t, apperr.InvalidInput(s.Rename(d.ID, "   ")))
}

func TestListOrdersByModifiedDescending(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.Create("first")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	b, err := s.Create("second")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	// Touching a makes it most recent again.
	require.NoError(t, s.SaveBody(a.ID, "first updated"))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestListIsSnapshot(t *testing.T) {
	s, _ := newTestStore(t)

	d, err := s.Create("body")
	require.NoError(t, err)

	snapshot := s.List()
	require.NoError(t, s.Rename(d.ID, "Changed"))

	assert.NotEqual(t, "Changed", snapshot[0].Title)
}

func TestGetDanglingReference(t *testing.T) {
	s, _ := newTestStore(t)

	d, err := s.Create("body")
	require.NoError(t, err)
	require.NoError(t, s.Delete(d.ID))

	_, ok := s.Get(d.ID)
	assert.False(t, ok)
}

func TestRefreshRecoversDraftWithoutSidecar(t *testing.T) {
	s, fs := newTestStore(t)

	path := filepath.Join(fs.DraftsDir(), "external-draft.md")
	require.NoError(t, os.WriteFile(path, []byte("Recovered Title\n\nbody text"), 0o644))

	require.NoError(t, s.Refresh())

	d, ok := s.Get("external-draft")
	require.True(t, ok)
	assert.Equal(t, "Recovered Title", d.Title)

	loaded, err := s.Load("external-draft")
	require.NoError(t, err)
	assert.Equal(t, "Recovered Title\n\nbody text", loaded.Body)
}

func TestLoadInvalidUTF8IsCorrupt(t *testing.T) {
	s, fs := newTestStore(t)

	d, err := s.Create("ok")
	require.NoError(t, err)

	// Clobber the content file with invalid UTF-8.
	var m meta
	require.NoError(t, fs.ReadJSON(filepath.Join(fs.DraftsDir(), d.ID+metaSuffix), &m))
	require.NoError(t, os.WriteFile(filepath.Join(fs.DraftsDir(), d.ID+".md"), []byte{0xff, 0xfe, 0xfd}, 0o644))

	_, err = s.Load(d.ID)
	assert.True(t, apperr.CorruptData(err))
}

func TestSaveBodyUnknownIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	assert.True(t, apperr.NotFound(s.SaveBody("ghost", "text")))
}

func TestWatcherPicksUpExternalCreate(t *testing.T) {
	s, fs := newTestStore(t)

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(s, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(fs.DraftsDir(), "outside.md")
	require.NoError(t, os.WriteFile(path, []byte("From Outside"), 0o644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not report external draft")
	}

	_, ok := s.Get("outside")
	assert.True(t, ok)
}

func TestTitleFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain line", "Hello World\nmore", "Hello World"},
		{"long multibyte line truncates on runes", strings.Repeat("ä", 80), strings.Repeat("ä", 60)},
		{"heading marker stripped", "## Chapter One\ntext", "Chapter One"},
		{"skips blank lines", "\n\n  \nActual Title", "Actual Title"},
		{"empty body", "", ""},
		{"only hashes", "###\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromBody(tt.body))
		})
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 2, CountWords("hello world"))
	assert.Equal(t, 3, CountWords("  one\ntwo\tthree  "))
}
