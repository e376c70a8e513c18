package hydration

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrPersistenceCorrupt     = errors.New("hydration snapshot corrupt")
	ErrPersistenceWriteFailed = errors.New("hydration snapshot write failed")
)

// Snapshotter loads and saves the whole hydration record.
type Snapshotter interface {
	Load() (Record, error)
	Save(Record) error
}

// FileStore keeps the record as a JSON object in a single file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. Keys missing from the file keep their defaults.
// A missing file is reported with an error wrapping os.ErrNotExist; anything
// unreadable wraps ErrPersistenceCorrupt.
func (s *FileStore) Load() (Record, error) {
	rec := DefaultRecord()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return rec, fmt.Errorf("snapshot %s: %w", s.path, os.ErrNotExist)
	}
	if err != nil {
		return rec, fmt.Errorf("%w: reading %s: %v", ErrPersistenceCorrupt, s.path, err)
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return DefaultRecord(), fmt.Errorf("%w: decoding %s: %v", ErrPersistenceCorrupt, s.path, err)
	}

	return rec, nil
}

// Save atomically replaces the snapshot: write to a temp file then rename.
func (s *FileStore) Save(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%w: creating directories: %v", ErrPersistenceWriteFailed, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshalling: %v", ErrPersistenceWriteFailed, err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("%w: writing temp file: %v", ErrPersistenceWriteFailed, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming temp file: %v", ErrPersistenceWriteFailed, err)
	}
	return nil
}
