package flow

import (
	"sort"
	"sync"
	"time"

	"github.com/timapple/writeapp/internal/apperr"
	"github.com/timapple/writeapp/internal/storage"
)

// Tracker owns the session log. At most one session is in progress at a time;
// beginning a new one while another is open implicitly closes the first.
type Tracker struct {
	mu      sync.Mutex
	store   *storage.Store
	history []Session
	open    *Session

	// now is swappable for tests.
	now func() time.Time
}

// NewTracker creates a Tracker bound to the given store.
func NewTracker(store *storage.Store) *Tracker {
	return &Tracker{
		store: store,
		now:   time.Now,
	}
}

// Load reads the persisted session log. A missing log is an empty history;
// a corrupt log starts fresh and returns the error for a warning.
func (t *Tracker) Load() error {
	var sessions []Session
	err := t.store.ReadJSON(t.store.FlowPath(), &sessions)
	if err != nil {
		if apperr.NotFound(err) {
			return nil
		}
		return err
	}

	t.mu.Lock()
	t.history = sessions
	t.sortLocked()
	t.mu.Unlock()
	return nil
}

// BeginSession opens a new in-progress session for the given draft.
// If a session is already open it is closed first, using the word count
// supplied here as its end count.
func (t *Tracker) BeginSession(draftID string, wordCount int) error {
	t.mu.Lock()
	var toPersist bool
	if t.open != nil {
		t.closeOpenLocked(wordCount)
		toPersist = true
	}
	t.open = &Session{
		StartTime:  t.now(),
		WordsStart: wordCount,
		DraftID:    draftID,
	}
	t.mu.Unlock()

	if toPersist {
		return t.persist()
	}
	return nil
}

// EndSession closes the in-progress session with the given word count and
// appends it to the log. A no-op when no session is in progress.
func (t *Tracker) EndSession(wordCount int) error {
	t.mu.Lock()
	if t.open == nil {
		t.mu.Unlock()
		return nil
	}
	t.closeOpenLocked(wordCount)
	t.mu.Unlock()

	return t.persist()
}

// closeOpenLocked finalizes the open session into history. Caller holds mu.
func (t *Tracker) closeOpenLocked(wordCount int) {
	s := *t.open
	s.EndTime = t.now()
	s.WordsEnd = wordCount
	t.history = append(t.history, s)
	t.sortLocked()
	t.open = nil
}

// InProgress reports whether a session is currently open and, if so, the
// draft it references.
func (t *Tracker) InProgress() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open == nil {
		return "", false
	}
	return t.open.DraftID, true
}

// History returns closed sessions, newest first. The slice is a snapshot.
func (t *Tracker) History() []Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Session, len(t.history))
	copy(out, t.history)
	return out
}

// sortLocked keeps history ordered newest-first. Caller holds mu.
func (t *Tracker) sortLocked() {
	sort.SliceStable(t.history, func(i, j int) bool {
		return t.history[i].StartTime.After(t.history[j].StartTime)
	})
}

// persist writes the full log. The log is small: whole-file rewrite keeps the
// on-disk format a plain ordered JSON array.
func (t *Tracker) persist() error {
	t.mu.Lock()
	sessions := make([]Session, len(t.history))
	copy(sessions, t.history)
	t.mu.Unlock()

	return t.store.WriteJSON(t.store.FlowPath(), sessions)
}
