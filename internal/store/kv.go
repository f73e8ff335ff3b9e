// Package store provides offline-first persistence for GoNimbus.
// This file contains the key-value substrate interface and the in-memory
// implementation used for testing and host-managed storage.
package store

import "sync"

// KV is the string-keyed, string-valued persistence substrate the offline
// store writes through. Implementations must be safe for concurrent use;
// the offline store performs read-modify-write cycles under its own lock,
// but other readers (the hosting UI) may access keys directly.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Keys returns all stored keys, in no particular order.
	Keys() ([]string, error)
	// Lifecycle
	Close() error
}

// MemKV is an in-memory implementation of KV.
type MemKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemKV creates a new in-memory key-value store.
func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string]string)}
}

// Close is a no-op for MemKV.
func (m *MemKV) Close() error {
	return nil
}

func (m *MemKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *MemKV) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys, nil
}

// Compile-time interface check
var _ KV = (*MemKV)(nil)
