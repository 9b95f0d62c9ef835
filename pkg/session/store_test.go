package session

import (
	"os"
	"path/filepath"
	"testing"
)

func testIdentity() *Identity {
	return &Identity{ID: "user_1", Name: "Alice", Email: "alice@example.com", Role: "user"}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore(NewMemStorage())

	if err := store.Save(testIdentity(), "token123"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	sess, ok := store.Load()
	if !ok {
		t.Fatalf("expected session after save")
	}
	if sess.Token != "token123" {
		t.Fatalf("unexpected token: %q", sess.Token)
	}
	if sess.Identity == nil || sess.Identity.ID != "user_1" || sess.Identity.Role != "user" {
		t.Fatalf("unexpected identity: %+v", sess.Identity)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	store := NewStore(NewMemStorage())
	if _, ok := store.Load(); ok {
		t.Fatalf("expected no session from empty storage")
	}
}

func TestStore_PartialDataClearedOnLoad(t *testing.T) {
	storage := NewMemStorage()
	// A token without an identity is the torn state a crashed writer or a
	// tampering user could leave behind.
	if err := storage.Write(map[string]string{"auth_token": "orphan"}); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	store := NewStore(storage)
	if _, ok := store.Load(); ok {
		t.Fatalf("partial session must not load")
	}

	entries, err := storage.Read()
	if err != nil {
		t.Fatalf("read storage: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected remnants cleared, got %v", entries)
	}
}

func TestStore_CorruptIdentityClearedOnLoad(t *testing.T) {
	storage := NewMemStorage()
	if err := storage.Write(map[string]string{
		"auth_token": "token123",
		"user":       "{not-json",
	}); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	store := NewStore(storage)
	if _, ok := store.Load(); ok {
		t.Fatalf("corrupt session must not load")
	}

	entries, _ := storage.Read()
	if len(entries) != 0 {
		t.Fatalf("expected remnants cleared, got %v", entries)
	}
}

func TestStore_ClearIdempotent(t *testing.T) {
	store := NewStore(NewMemStorage())
	if err := store.Save(testIdentity(), "token123"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("first Clear returned error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected no session after clear")
	}
}

func TestFileStorage_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")

	store := NewStore(NewFileStorage(path))
	if err := store.Save(testIdentity(), "token123"); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// A fresh store over the same path sees the persisted session.
	reopened := NewStore(NewFileStorage(path))
	sess, ok := reopened.Load()
	if !ok {
		t.Fatalf("expected session from reopened storage")
	}
	if sess.Token != "token123" || sess.Identity.Email != "alice@example.com" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestFileStorage_MissingFileIsEmpty(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "absent.json"))
	entries, err := storage.Read()
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty map, got %v", entries)
	}
}

func TestFileStorage_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(filepath.Join(dir, "session.json"))

	if err := storage.Write(map[string]string{"auth_token": "t"}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(files) != 1 || files[0].Name() != "session.json" {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name()
		}
		t.Fatalf("expected only session.json, got %v", names)
	}
}
