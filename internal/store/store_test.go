package store

import (
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
)

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "snip-test.db")
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	// Test Put and Get
	if err := s.Put("x", "(define x 1)"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := s.Get("x")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || got != "(define x 1)" {
		t.Errorf("expected '(define x 1)', got '%s' (ok=%v)", got, ok)
	}

	// Test Delete
	if err := s.Delete("x"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err = s.Get("x")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if ok {
		t.Errorf("expected x to be gone after delete")
	}
}

func TestSQLiteStore(t *testing.T) {
	path := tempDB(t)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}

	if err := s.Put("greeting", `(define greeting "world")`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := s.Get("greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || got != `(define greeting "world")` {
		t.Errorf("unexpected value '%s' (ok=%v)", got, ok)
	}

	// Close and reopen to verify persistence
	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	got, ok, err = s2.Get("greeting")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !ok || got != `(define greeting "world")` {
		t.Errorf("unexpected value after reopen '%s'", got)
	}

	version, err := s2.GetMetadata("schema_version")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("expected schema version %s, got %s", SchemaVersion, version)
	}
}

func TestNames(t *testing.T) {
	sq, err := NewSQLite(tempDB(t))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer sq.Close()

	for _, s := range []Store{NewMemory(), sq} {
		s.Put("b", "(define b 2)")
		s.Put("a", "(define a 1)")
		names, err := s.Names()
		if err != nil {
			t.Fatalf("Names failed: %v", err)
		}
		if !reflect.DeepEqual(names, []string{"a", "b"}) {
			t.Errorf("%T: expected [a b], got %v", s, names)
		}
	}
}

func TestMemoryVersioning(t *testing.T) {
	s := NewMemory()

	// Put creates version 1
	s.Put("x", "first")
	got, _, _ := s.Get("x")
	if got != "first" {
		t.Errorf("expected 'first', got '%s'", got)
	}

	// Put again with different value creates version 2
	s.Put("x", "second")
	got, _, _ = s.Get("x")
	if got != "second" {
		t.Errorf("expected 'second', got '%s'", got)
	}

	// Put with same value is a no-op (dedup)
	s.Put("x", "second")

	// GetHistory returns newest-first
	entries, err := s.GetHistory("x", 0)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Version != 2 || entries[0].Value != "second" {
		t.Errorf("entry[0]: expected v2 'second', got v%d '%s'", entries[0].Version, entries[0].Value)
	}
	if entries[1].Version != 1 || entries[1].Value != "first" {
		t.Errorf("entry[1]: expected v1 'first', got v%d '%s'", entries[1].Version, entries[1].Value)
	}

	// GetHistory with limit
	entries, err = s.GetHistory("x", 1)
	if err != nil {
		t.Fatalf("GetHistory with limit failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Version != 2 {
		t.Fatalf("expected only v2 with limit, got %v", entries)
	}

	// GetHistory on nonexistent returns nil
	entries, err = s.GetHistory("nope", 0)
	if err != nil {
		t.Fatalf("GetHistory nonexistent failed: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil for nonexistent, got %v", entries)
	}

	// Delete removes all versions
	s.Delete("x")
	entries, _ = s.GetHistory("x", 0)
	if entries != nil {
		t.Errorf("expected nil after delete, got %v", entries)
	}
}

func TestSQLiteVersioning(t *testing.T) {
	s, err := NewSQLite(tempDB(t))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	defer s.Close()

	s.Put("x", "first")
	s.Put("x", "second")
	// Same value is a no-op
	s.Put("x", "second")

	entries, err := s.GetHistory("x", 0)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Version != 2 || entries[0].Value != "second" {
		t.Errorf("entry[0]: expected v2 'second', got v%d '%s'", entries[0].Version, entries[0].Value)
	}
	if entries[1].Version != 1 || entries[1].Value != "first" {
		t.Errorf("entry[1]: expected v1 'first', got v%d '%s'", entries[1].Version, entries[1].Value)
	}
	// Timestamps should be non-empty
	if entries[0].Ts == "" {
		t.Error("expected non-empty timestamp")
	}

	entries, _ = s.GetHistory("x", 1)
	if len(entries) != 1 {
		t.Fatalf("expected 1 with limit, got %d", len(entries))
	}

	// Delete removes all versions
	s.Delete("x")
	entries, _ = s.GetHistory("x", 0)
	if len(entries) != 0 {
		t.Errorf("expected 0 after delete, got %d", len(entries))
	}
}

func TestSQLiteMigrationV1toV2(t *testing.T) {
	path := tempDB(t)

	// Create a v1 database manually
	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE definitions (name TEXT PRIMARY KEY, value TEXT NOT NULL);
		CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);
		INSERT INTO metadata (key, value) VALUES ('schema_version', '1');
		INSERT INTO definitions (name, value) VALUES ('answer', '(define answer 42)');
	`)
	db.Close()
	if err != nil {
		t.Fatalf("seed v1 schema: %v", err)
	}

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite after migration: %v", err)
	}
	defer s.Close()

	got, ok, err := s.Get("answer")
	if err != nil || !ok || got != "(define answer 42)" {
		t.Fatalf("expected preserved definition, got '%s' ok=%v err=%v", got, ok, err)
	}

	// Existing row became version 1
	entries, err := s.GetHistory("answer", 0)
	if err != nil {
		t.Fatalf("GetHistory after migration: %v", err)
	}
	if len(entries) != 1 || entries[0].Version != 1 {
		t.Fatalf("expected a single v1 entry, got %v", entries)
	}

	s.Put("answer", "(define answer 43)")
	entries, _ = s.GetHistory("answer", 0)
	if len(entries) != 2 || entries[0].Version != 2 {
		t.Fatalf("expected v2 on top after update, got %v", entries)
	}
}

func TestSQLiteRejectsUnknownSchema(t *testing.T) {
	path := tempDB(t)
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	s.SetMetadata("schema_version", "99")
	s.Close()

	if _, err := NewSQLite(path); err == nil {
		t.Fatal("expected error for unsupported schema version")
	}
}
