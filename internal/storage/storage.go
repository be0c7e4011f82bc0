// Package storage is the persistence layer: it owns the WriteApp directory
// layout and translates filesystem failures into the application error
// taxonomy. Higher layers (draft store, flow tracker, settings) never touch
// the filesystem directly.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/timapple/writeapp/internal/apperr"
)

// Store provides file access rooted at the application base directory.
type Store struct {
	base string
}

// New creates a Store rooted at base. Call Init before any other method.
func New(base string) *Store {
	return &Store{base: base}
}

// Init creates the base directory and the drafts subdirectory.
// Failure here is fatal at startup: the process cannot persist anything.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.DraftsDir(), 0o755); err != nil {
		return apperr.New("storage.init", s.base, wrapIO(err))
	}
	return nil
}

// ReadText reads a raw text file.
func (s *Store) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperr.New("storage.read", path, wrapIO(err))
	}
	return string(data), nil
}

// WriteText writes a raw text file atomically.
func (s *Store) WriteText(path, content string) error {
	if err := writeAtomic(path, []byte(content)); err != nil {
		return apperr.New("storage.write", path, wrapIO(err))
	}
	return nil
}

// ReadJSON reads and decodes a JSON file into v.
// A missing file maps to NotFound, an undecodable file to CorruptData.
func (s *Store) ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperr.New("storage.read", path, wrapIO(err))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperr.New("storage.decode", path, apperr.ErrCorruptData)
	}
	return nil
}

// WriteJSON encodes v and writes it atomically.
func (s *Store) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperr.New("storage.encode", path, apperr.ErrCorruptData)
	}
	data = append(data, '\n')
	if err := writeAtomic(path, data); err != nil {
		return apperr.New("storage.write", path, wrapIO(err))
	}
	return nil
}

// Remove deletes a file. A missing file maps to NotFound.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return apperr.New("storage.remove", path, wrapIO(err))
	}
	return nil
}

// Exists reports whether a path exists.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat returns file info with taxonomy-mapped errors.
func (s *Store) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperr.New("storage.stat", path, wrapIO(err))
	}
	return info, nil
}

// ListDir returns the names of regular files in a directory.
// A missing directory yields an empty list, not an error.
func (s *Store) ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperr.New("storage.list", dir, wrapIO(err))
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// writeAtomic writes data to a temp file in the target directory and renames
// it into place, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// wrapIO maps an os-level error onto the taxonomy.
func wrapIO(err error) error {
	if os.IsNotExist(err) {
		return apperr.ErrNotFound
	}
	return apperr.ErrStorageFault
}
