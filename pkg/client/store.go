package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the session snapshot between process runs.
type Store interface {
	// Load returns the saved snapshot, or ok=false when none exists.
	Load() (snap Snapshot, ok bool, err error)
	Save(snap Snapshot) error
	Clear() error
}

// FileStore keeps the snapshot as a JSON file. The token inside is a bearer
// credential, so the file is written with owner-only permissions.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (Snapshot, bool, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt file is treated as no session rather than a hard error.
		return Snapshot{}, false, nil
	}
	if snap.Token == "" {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (f *FileStore) Save(snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// memoryStore is the default when no persistence is configured.
type memoryStore struct {
	snap Snapshot
	ok   bool
}

func (m *memoryStore) Load() (Snapshot, bool, error) { return m.snap, m.ok, nil }

func (m *memoryStore) Save(snap Snapshot) error {
	m.snap, m.ok = snap, true
	return nil
}

func (m *memoryStore) Clear() error {
	m.snap, m.ok = Snapshot{}, false
	return nil
}
