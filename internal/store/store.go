// Package store provides persistence for snip definitions.
//
// A definition is stored as source text that re-creates the binding when
// evaluated, keyed by the bound name. Every distinct value put under a name
// is kept as a numbered version.
package store

// Store is the interface for definition persistence.
type Store interface {
	// Get retrieves the current source for name. ok is false if not found.
	Get(name string) (source string, ok bool, err error)
	// Put stores source under name, overwriting the current value.
	Put(name, source string) error
	// Delete removes name and its history.
	Delete(name string) error
	// Names lists every stored name in sorted order.
	Names() ([]string, error)
	// Close releases resources.
	Close() error
}

// VersionEntry represents a single version of a persisted definition.
type VersionEntry struct {
	Version int
	Value   string
	Ts      string
}

// HistoryStore extends Store with version history queries.
type HistoryStore interface {
	// GetHistory returns versions newest first; limit 0 means all.
	GetHistory(name string, limit int) ([]VersionEntry, error)
}
