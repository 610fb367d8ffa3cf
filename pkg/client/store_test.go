package client

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("fresh store must be empty: ok=%v err=%v", ok, err)
	}

	snap := Snapshot{
		Token:   "tok",
		User:    User{ID: 4, Usuario: "ana", Rol: "admin"},
		SavedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.Token != "tok" || got.User.Usuario != "ana" || !got.SavedAt.Equal(snap.SavedAt) {
		t.Fatalf("unexpected snapshot: %+v", got)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Fatalf("token file must be owner-only, got %o", perm)
		}
	}
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	if err := store.Save(Snapshot{Token: "tok"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatalf("snapshot survived clear")
	}
	// Clearing an already-empty store is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewFileStore(path)
	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("corrupt file must read as empty: ok=%v err=%v", ok, err)
	}
}

func TestFileStore_EmptyTokenTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	if err := store.Save(Snapshot{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatalf("tokenless snapshot must read as empty")
	}
}
