package draft

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timapple/writeapp/internal/apperr"
	"github.com/timapple/writeapp/internal/storage"
)

const metaSuffix = ".meta.json"

// meta is the sidecar record persisted next to each draft file.
// Ext records the content file's extension so drafts survive a later change
// of the default extension setting.
type meta struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Ext        string    `json:"ext,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Store is the draft registry. All operations persist immediately; the
// in-memory map is a cache of sidecar metadata for List.
type Store struct {
	mu     sync.RWMutex
	store  *storage.Store
	ext    string
	drafts map[string]meta
}

// NewStore creates a Store using the given file extension for new drafts.
func NewStore(store *storage.Store, ext string) *Store {
	return &Store{
		store:  store,
		ext:    strings.TrimPrefix(ext, "."),
		drafts: make(map[string]meta),
	}
}

// SetExtension changes the extension used for newly created drafts.
// Existing drafts keep their files.
func (s *Store) SetExtension(ext string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ext = strings.TrimPrefix(ext, ".")
}

// Refresh scans the drafts directory and rebuilds the registry.
// Drafts without a sidecar are recovered from the content file alone.
func (s *Store) Refresh() error {
	dir := s.store.DraftsDir()
	names, err := s.store.ListDir(dir)
	if err != nil {
		return err
	}

	found := make(map[string]meta)
	for _, name := range names {
		if strings.HasSuffix(name, metaSuffix) || strings.HasPrefix(name, ".") {
			continue
		}
		id := strings.TrimSuffix(name, filepath.Ext(name))
		if id == "" {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(name), ".")

		var m meta
		if err := s.store.ReadJSON(s.metaPath(id), &m); err != nil || m.ID == "" {
			m, err = s.recoverMeta(id, ext, filepath.Join(dir, name))
			if err != nil {
				continue
			}
		}
		if m.Ext == "" {
			m.Ext = ext
		}
		found[id] = m
	}

	s.mu.Lock()
	s.drafts = found
	s.mu.Unlock()
	return nil
}

// recoverMeta rebuilds sidecar metadata from the content file.
func (s *Store) recoverMeta(id, ext, path string) (meta, error) {
	body, err := s.store.ReadText(path)
	if err != nil {
		return meta{}, err
	}

	m := meta{ID: id, Ext: ext, Title: TitleFromBody(body)}
	if m.Title == "" {
		m.Title = "Untitled"
	}
	if info, err := s.store.Stat(path); err == nil {
		m.CreatedAt = info.ModTime()
		m.ModifiedAt = info.ModTime()
	} else {
		now := time.Now()
		m.CreatedAt = now
		m.ModifiedAt = now
	}

	// Persist the recovered sidecar so the next scan is cheap.
	_ = s.store.WriteJSON(s.metaPath(id), m)
	return m, nil
}

// Create makes a new draft with the given initial body, persists it, and
// returns it. The title defaults to the first line of the body, else a
// timestamp.
func (s *Store) Create(initialBody string) (Draft, error) {
	s.mu.RLock()
	ext := s.ext
	s.mu.RUnlock()

	now := time.Now()
	m := meta{
		ID:         uuid.NewString(),
		Title:      TitleFromBody(initialBody),
		Ext:        ext,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if m.Title == "" {
		m.Title = "Draft " + now.Format("2006-01-02 15:04:05")
	}

	if err := s.store.WriteText(s.bodyPath(m), initialBody); err != nil {
		return Draft{}, err
	}
	if err := s.store.WriteJSON(s.metaPath(m.ID), m); err != nil {
		return Draft{}, err
	}

	s.mu.Lock()
	s.drafts[m.ID] = m
	s.mu.Unlock()

	return s.toDraft(m, initialBody), nil
}

// Rename updates a draft's title. The ID and body are untouched.
func (s *Store) Rename(id, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return apperr.New("draft.rename", id, apperr.ErrInvalidInput)
	}

	s.mu.Lock()
	m, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return apperr.New("draft.rename", id, apperr.ErrNotFound)
	}
	m.Title = newTitle
	m.ModifiedAt = time.Now()
	s.drafts[id] = m
	s.mu.Unlock()

	return s.store.WriteJSON(s.metaPath(id), m)
}

// Delete removes a draft's files. Deleting an unknown draft yields NotFound;
// callers treat a second delete as success-equivalent.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	m, ok := s.drafts[id]
	delete(s.drafts, id)
	if !ok {
		m = meta{ID: id, Ext: s.ext}
	}
	s.mu.Unlock()

	if !ok && !s.store.Exists(s.bodyPath(m)) {
		return apperr.New("draft.delete", id, apperr.ErrNotFound)
	}

	if err := s.store.Remove(s.bodyPath(m)); err != nil && !apperr.NotFound(err) {
		return err
	}
	// The sidecar may legitimately be absent.
	if err := s.store.Remove(s.metaPath(id)); err != nil && !apperr.NotFound(err) {
		return err
	}
	return nil
}

// List returns draft metadata ordered by most-recently-modified first.
// The returned slice is a snapshot; later mutations do not affect it.
func (s *Store) List() []Draft {
	s.mu.RLock()
	drafts := make([]Draft, 0, len(s.drafts))
	for _, m := range s.drafts {
		drafts = append(drafts, s.toDraft(m, ""))
	}
	s.mu.RUnlock()

	sort.Slice(drafts, func(i, j int) bool {
		if !drafts[i].ModifiedAt.Equal(drafts[j].ModifiedAt) {
			return drafts[i].ModifiedAt.After(drafts[j].ModifiedAt)
		}
		return drafts[i].ID < drafts[j].ID
	})
	return drafts
}

// Get returns draft metadata by ID. The weak references held by the editor
// and session records resolve through here; a dangling ID is just !ok.
func (s *Store) Get(id string) (Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.drafts[id]
	if !ok {
		return Draft{}, false
	}
	return s.toDraft(m, ""), true
}

// Load reads a draft with its full body.
func (s *Store) Load(id string) (Draft, error) {
	s.mu.RLock()
	m, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return Draft{}, apperr.New("draft.load", id, apperr.ErrNotFound)
	}

	body, err := s.store.ReadText(s.bodyPath(m))
	if err != nil {
		if apperr.NotFound(err) {
			return Draft{}, apperr.New("draft.load", id, apperr.ErrNotFound)
		}
		return Draft{}, err
	}
	if !utf8Valid(body) {
		return Draft{}, apperr.New("draft.load", id, apperr.ErrCorruptData)
	}
	return s.toDraft(m, body), nil
}

// SaveBody persists a draft's body, bumping its modified time.
// This is the auto-save path from the editor.
func (s *Store) SaveBody(id, body string) error {
	s.mu.Lock()
	m, ok := s.drafts[id]
	if !ok {
		s.mu.Unlock()
		return apperr.New("draft.save", id, apperr.ErrNotFound)
	}
	m.ModifiedAt = time.Now()
	s.drafts[id] = m
	s.mu.Unlock()

	if err := s.store.WriteText(s.bodyPath(m), body); err != nil {
		return err
	}
	return s.store.WriteJSON(s.metaPath(id), m)
}

func (s *Store) bodyPath(m meta) string {
	ext := m.Ext
	if ext == "" {
		s.mu.RLock()
		ext = s.ext
		s.mu.RUnlock()
	}
	return filepath.Join(s.store.DraftsDir(), m.ID+"."+ext)
}

func (s *Store) metaPath(id string) string {
	return filepath.Join(s.store.DraftsDir(), id+metaSuffix)
}

func (s *Store) toDraft(m meta, body string) Draft {
	return Draft{
		ID:         m.ID,
		Title:      m.Title,
		CreatedAt:  m.CreatedAt,
		ModifiedAt: m.ModifiedAt,
		Body:       body,
	}
}
