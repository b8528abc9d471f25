// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

// exercise runs the behaviour shared by every Store implementation.
func exercise(t *testing.T, s Store) {
	t.Helper()

	first, err := s.Append(Entry{Session: "a", Expression: "1+1", RPN: "1 1 +", Result: 2})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	second, err := s.Append(Entry{Session: "a", Expression: "1/0", RPN: "1 0 /", Err: "division by zero"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if second <= first {
		t.Errorf("expected increasing IDs, got %d then %d", first, second)
	}

	got, err := s.Get(first)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Expression != "1+1" || got.Result != 2 || got.RPN != "1 1 +" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Ts == "" {
		t.Error("expected timestamp to be set")
	}
	if got.Failed() {
		t.Error("expected successful entry")
	}

	got, err = s.Get(second)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || !got.Failed() {
		t.Errorf("expected failed entry, got %+v", got)
	}

	got, err = s.Get(9999)
	if err != nil {
		t.Fatalf("Get nonexistent failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for nonexistent, got %+v", got)
	}

	// Recent returns newest first
	entries, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != second || entries[1].ID != first {
		t.Errorf("expected newest first, got %d, %d", entries[0].ID, entries[1].ID)
	}

	entries, err = s.Recent(1)
	if err != nil {
		t.Fatalf("Recent with limit failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != second {
		t.Errorf("expected only the newest entry, got %+v", entries)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	entries, err = s.Recent(0)
	if err != nil {
		t.Fatalf("Recent after clear failed: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil after clear, got %v", entries)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	exercise(t, s)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arith-test.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	defer s.Close()
	exercise(t, s)
}

func TestSQLitePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arith-test.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	id, err := s.Append(Entry{Session: "s1", Expression: "(2+3)*4", RPN: "2 3 + 4 *", Result: 20})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Close and reopen to verify persistence
	s.Close()

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(id)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got == nil || got.Result != 20 || got.Session != "s1" {
		t.Errorf("expected persisted entry, got %+v", got)
	}

	version, err := s2.GetMetadata("schema_version")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("expected schema version %s, got %q", SchemaVersion, version)
	}
}

func TestSQLiteRejectsUnknownSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")

	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);
		INSERT INTO metadata (key, value) VALUES ('schema_version', '99');
	`)
	db.Close()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := NewSQLite(path); err == nil {
		t.Error("expected unsupported schema version error")
	}
}

func TestSQLiteBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "arith.db")
	if _, err := NewSQLite(path); err == nil {
		t.Error("expected error for unopenable path")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("expected no database file to be created")
	}
}

func TestMetadata(t *testing.T) {
	stores := map[string]MetadataStore{
		"memory": NewMemory(),
	}
	s, err := NewSQLite(filepath.Join(t.TempDir(), "meta.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	stores["sqlite"] = s

	for name, ms := range stores {
		t.Run(name, func(t *testing.T) {
			defer ms.Close()
			if err := ms.SetMetadata("k", "v1"); err != nil {
				t.Fatalf("SetMetadata: %v", err)
			}
			if err := ms.SetMetadata("k", "v2"); err != nil {
				t.Fatalf("SetMetadata overwrite: %v", err)
			}
			v, err := ms.GetMetadata("k")
			if err != nil {
				t.Fatalf("GetMetadata: %v", err)
			}
			if v != "v2" {
				t.Errorf("expected v2, got %q", v)
			}
			v, err = ms.GetMetadata("missing")
			if err != nil || v != "" {
				t.Errorf("expected empty value, got %q, %v", v, err)
			}
		})
	}
}
