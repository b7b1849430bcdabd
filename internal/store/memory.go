package store

import (
	"sort"
	"sync"
	"time"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu       sync.RWMutex
	versions map[string][]VersionEntry // oldest first
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		versions: make(map[string][]VersionEntry),
	}
}

// Get retrieves the current source for name.
func (m *Memory) Get(name string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vs := m.versions[name]
	if len(vs) == 0 {
		return "", false, nil
	}
	return vs[len(vs)-1].Value, true, nil
}

// Put stores source by name. Storing the current value again is a no-op.
func (m *Memory) Put(name, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vs := m.versions[name]
	if len(vs) > 0 && vs[len(vs)-1].Value == source {
		return nil
	}
	m.versions[name] = append(vs, VersionEntry{
		Version: len(vs) + 1,
		Value:   source,
		Ts:      time.Now().UTC().Format(time.DateTime),
	})
	return nil
}

// Delete removes name and all of its versions.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.versions, name)
	return nil
}

// Names lists stored names in sorted order.
func (m *Memory) Names() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.versions))
	for name := range m.versions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetHistory returns versions of name newest first.
func (m *Memory) GetHistory(name string, limit int) ([]VersionEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vs := m.versions[name]
	if len(vs) == 0 {
		return nil, nil
	}
	var out []VersionEntry
	for i := len(vs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, vs[i])
	}
	return out, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
