// Package persist saves the client auth state between runs. The state is
// serialized, encrypted with AES-256-GCM and written to a Storage under a
// single key.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Storage is a string key-value store. GetItem returns "" for a missing key.
type Storage interface {
	GetItem(key string) (string, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// FileStorage keeps one file per key inside Dir.
type FileStorage struct {
	Dir string
}

// NewFileStorage returns a FileStorage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{Dir: dir}
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.Dir, "persist-"+key)
}

// GetItem reads the value stored under key.
func (f *FileStorage) GetItem(key string) (string, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return string(b), nil
}

// SetItem writes value under key, readable only by the current user.
func (f *FileStorage) SetItem(key, value string) error {
	if err := os.MkdirAll(f.Dir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("replacing %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (f *FileStorage) RemoveItem(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// NoopStorage discards writes and reads nothing. Used when no state
// directory is available.
type NoopStorage struct{}

func (NoopStorage) GetItem(string) (string, error) { return "", nil }
func (NoopStorage) SetItem(string, string) error    { return nil }
func (NoopStorage) RemoveItem(string) error         { return nil }
