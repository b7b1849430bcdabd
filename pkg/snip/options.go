// Package snip provides the public API for the snip interpreter.
package snip

import (
	"io"
	"log/slog"

	"nickandperla.net/snip/internal/eval"
	"nickandperla.net/snip/internal/store"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithSQLiteStore configures SQLite persistence at the given path.
// If the database cannot be opened the runtime runs without a store and
// the failure is logged.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			r.storeErr = err
			return
		}
		r.store = s
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory()
	}
}

// WithStore sets a custom store.
func WithStore(s Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithOutput sets the io.Writer used by print.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithErrorOutput sets the io.Writer that failing forms are reported to
// while loading.
func WithErrorOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.errOut = w
	}
}

// WithInput sets the source read by (read) without arguments.
func WithInput(in io.Reader) Option {
	return func(r *Runtime) {
		r.input = in
	}
}

// WithLogger sets the logger for interpreter tracing.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// WithExit sets the handler called by (exit).
func WithExit(fn func(code int)) Option {
	return func(r *Runtime) {
		r.exit = fn
	}
}

// WithPrelude sets a custom prelude source to be loaded on startup.
// If not set, DefaultPrelude is used.
func WithPrelude(source string) Option {
	return func(r *Runtime) {
		r.prelude = source
	}
}

// WithNoStdlib disables loading the standard library prelude.
func WithNoStdlib() Option {
	return func(r *Runtime) {
		r.noStdlib = true
	}
}

// Store interface for custom stores.
type Store = store.Store

// PersistMode controls when definitions are persisted.
type PersistMode = eval.PersistMode

// Persist mode constants.
const (
	PersistOnDemand = eval.PersistOnDemand
	PersistAlways   = eval.PersistAlways
	PersistNever    = eval.PersistNever
)

// ParsePersistMode parses a string into a PersistMode.
func ParsePersistMode(s string) (PersistMode, bool) {
	return eval.ParsePersistMode(s)
}

// WithPersistMode sets the persistence mode.
func WithPersistMode(mode PersistMode) Option {
	return func(r *Runtime) {
		r.persistMode = mode
	}
}
