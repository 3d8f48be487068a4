// Package storage is a file-per-key JSON store, the local equivalent of the
// browser storage the planner's data model was designed around. Missing keys
// and unparsable values are reported as absent so callers can substitute
// defaults; nothing here raises on corrupt data.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidKey rejects keys that would escape the storage directory.
var ErrInvalidKey = errors.New("storage key must not contain path separators")

// Store reads and writes JSON values under string keys inside a single
// directory. Writes are atomic per key; there is no transactionality across
// keys.
type Store struct {
	dir string
}

// Open ensures dir exists and returns a store rooted at it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// validKey keeps every key a plain file name. Imported backup documents
// carry bundle keys verbatim, so a crafted key like "../x" must not resolve
// outside the store.
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the value under key into dst. It returns false when the key is
// absent or the stored bytes are not valid JSON for dst; dst is left
// untouched in that case so the caller's default survives.
func (s *Store) Load(key string, dst any) bool {
	if !validKey(key) {
		return false
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false
	}
	return true
}

// Has reports whether a value exists under key, without decoding it.
func (s *Store) Has(key string) bool {
	if !validKey(key) {
		return false
	}
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Save serializes v and writes it under key. The value is written to a
// temporary file first and renamed into place so a crash mid-write cannot
// leave a half-written key.
func (s *Store) Save(key string, v any) error {
	if !validKey(key) {
		return fmt.Errorf("cannot store %q: %w", key, ErrInvalidKey)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %q: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if !validKey(key) {
		return fmt.Errorf("cannot delete %q: %w", key, ErrInvalidKey)
	}
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Keys lists every key currently present in the store.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage dir: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}
