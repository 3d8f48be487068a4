package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingKeyLeavesDefault(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	got := map[string]int{"fallback": 1}
	if s.Load("nope", &got) {
		t.Error("Load of missing key returned true")
	}
	if got["fallback"] != 1 {
		t.Errorf("default was clobbered: %v", got)
	}
}

func TestLoadCorruptValueLeavesDefault(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	var got []string
	if s.Load("bad", &got) {
		t.Error("Load of corrupt value returned true")
	}
	if got != nil {
		t.Errorf("dst mutated on corrupt load: %v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	type bundle struct {
		Names []string `json:"names"`
		Limit float64  `json:"limit"`
	}
	want := bundle{Names: []string{"Sam", "Alex"}, Limit: 200}
	if err := s.Save("bundle", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got bundle
	if !s.Load("bundle", &got) {
		t.Fatal("Load returned false for saved key")
	}
	if got.Limit != want.Limit || len(got.Names) != 2 || got.Names[0] != "Sam" {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestDeleteRemovesKey(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Save("k", 42); err != nil {
		t.Fatal(err)
	}
	if !s.Has("k") {
		t.Fatal("Has returned false for saved key")
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Has("k") {
		t.Error("key still present after delete")
	}
	// Deleting again is a no-op.
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestTraversalKeysAreRejected(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// Imported backup documents carry bundle keys verbatim, so a crafted
	// key must not write outside the store.
	for _, k := range []string{"../escape", "a/b", `a\b`, "..", ".", ""} {
		if err := s.Save(k, 1); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Save(%q) = %v, want ErrInvalidKey", k, err)
		}
		if s.Load(k, new(int)) {
			t.Errorf("Load(%q) returned true", k)
		}
		if s.Has(k) {
			t.Errorf("Has(%q) returned true", k)
		}
		if err := s.Delete(k); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Delete(%q) = %v, want ErrInvalidKey", k, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.json")); !os.IsNotExist(err) {
		t.Error("traversal key escaped the storage dir")
	}
}

func TestKeysListsSavedKeys(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, k := range []string{"alpha", "beta"} {
		if err := s.Save(k, k); err != nil {
			t.Fatal(err)
		}
	}
	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Keys = %v, want 2 entries", keys)
	}
}
