package store

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"sync"

	"github.com/hack-pad/hackpadfs"
)

// FSStore is a KV backed by a hackpadfs filesystem, one file per key.
// In the browser build the FS is IndexedDB-backed; tests use the in-memory
// filesystem. Keys in this store are fixed identifiers (see models.go),
// so they are used as file names directly.
type FSStore struct {
	mu  sync.RWMutex
	fs  hackpadfs.FS
	dir string
}

// NewFSStore creates a file-backed KV rooted at dir inside fs.
// Dir must already exist; pass "." for the filesystem root.
func NewFSStore(fs hackpadfs.FS, dir string) *FSStore {
	if dir == "" {
		dir = "."
	}
	return &FSStore{fs: fs, dir: dir}
}

// Close is a no-op; the caller owns the filesystem.
func (s *FSStore) Close() error {
	return nil
}

func (s *FSStore) path(key string) string {
	if s.dir == "." {
		return key
	}
	return s.dir + "/" + key
}

func (s *FSStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := hackpadfs.ReadFile(s.fs, s.path(key))
	if err != nil {
		if isNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("fs get %q: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FSStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hackpadfs.WriteFullFile(s.fs, s.path(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("fs set %q: %w", key, err)
	}
	return nil
}

func (s *FSStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hackpadfs.Remove(s.fs, s.path(key)); err != nil {
		if isNotExist(err) {
			return nil
		}
		return fmt.Errorf("fs delete %q: %w", key, err)
	}
	return nil
}

func (s *FSStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := iofs.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("fs keys: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

// Compile-time interface check
var _ KV = (*FSStore)(nil)
