// Package config manages the persisted settings record and the optional
// theme file. Settings are loaded once at startup, injected into components
// that need them, and written back on every change.
package config

import (
	"strings"
	"sync"

	"github.com/timapple/writeapp/internal/apperr"
	"github.com/timapple/writeapp/internal/storage"
)

// Settings is the process-wide settings record, persisted as settings.json.
type Settings struct {
	VimMode          bool   `json:"vim_mode"`
	FocusMode        bool   `json:"focus_mode"`
	PreviewMode      bool   `json:"preview_mode"`
	DefaultExtension string `json:"default_extension,omitempty"`
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{
		VimMode:          false,
		FocusMode:        false,
		PreviewMode:      false,
		DefaultExtension: "md",
	}
}

// Extension returns the draft file extension, falling back to the default
// when the persisted record predates the field.
func (s Settings) Extension() string {
	ext := strings.TrimPrefix(s.DefaultExtension, ".")
	if ext == "" {
		return "md"
	}
	return ext
}

// ChangeCallback is notified after settings are updated and persisted.
type ChangeCallback func(Settings)

// Manager owns the settings record and persists every change.
type Manager struct {
	mu        sync.RWMutex
	store     *storage.Store
	settings  Settings
	callbacks []ChangeCallback
}

// NewManager creates a Manager bound to the given store.
func NewManager(store *storage.Store) *Manager {
	return &Manager{
		store:    store,
		settings: DefaultSettings(),
	}
}

// Load reads settings.json. A missing file yields defaults. A corrupt file
// also yields defaults so a damaged record never blocks startup; the error
// is returned so the caller can surface a warning.
func (m *Manager) Load() error {
	var s Settings
	err := m.store.ReadJSON(m.store.SettingsPath(), &s)
	if err != nil {
		if apperr.NotFound(err) {
			return nil
		}
		if apperr.CorruptData(err) {
			m.mu.Lock()
			m.settings = DefaultSettings()
			m.mu.Unlock()
			return err
		}
		return err
	}

	if s.DefaultExtension == "" {
		s.DefaultExtension = "md"
	}

	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()
	return nil
}

// Current returns a copy of the current settings.
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Update replaces the settings, persists them, and notifies callbacks.
func (m *Manager) Update(s Settings) error {
	m.mu.Lock()
	m.settings = s
	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	if err := m.store.WriteJSON(m.store.SettingsPath(), s); err != nil {
		return err
	}

	for _, cb := range callbacks {
		cb(s)
	}
	return nil
}

// Toggle flips one boolean field via the mutator and persists the result.
func (m *Manager) Toggle(mutate func(*Settings)) error {
	m.mu.RLock()
	s := m.settings
	m.mu.RUnlock()

	mutate(&s)
	return m.Update(s)
}

// OnChange registers a callback invoked after every successful Update.
func (m *Manager) OnChange(cb ChangeCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}
