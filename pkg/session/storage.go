package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// FileStorage persists session entries as a JSON file. Writes go to a temp
// file in the same directory followed by a rename, so readers never observe
// a torn file.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	entries := map[string]string{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (f *FileStorage) Write(entries map[string]string) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, f.path)
}

// MemStorage is an in-memory Storage for tests and short-lived tools.
type MemStorage struct {
	entries map[string]string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{entries: map[string]string{}}
}

func (m *MemStorage) Read() (map[string]string, error) {
	out := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out, nil
}

func (m *MemStorage) Write(entries map[string]string) error {
	m.entries = make(map[string]string, len(entries))
	for k, v := range entries {
		m.entries[k] = v
	}
	return nil
}
