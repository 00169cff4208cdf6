// Package storage persists the target-inference memoization map as a JSON
// file in the workspace data directory. The file is loaded once per batch
// and rewritten in full at the end, never appended.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pti/internal/domain"
)

// Entry is the cached product of one target derivation: the target map
// plus its display metadata.
type Entry struct {
	Targets  map[string]domain.Target `json:"targets"`
	Metadata *domain.ProjectMetadata  `json:"metadata,omitempty"`
}

// Store is a disk-backed memoization map keyed by content hash. It is safe
// for concurrent use; identical keys always carry identical values, so
// last-writer-wins is fine.
type Store struct {
	path string

	mu      sync.Mutex
	entries map[string]Entry
}

// Open loads the store file at path. A missing file starts an empty store;
// an unreadable or corrupt file does too, since the cache is an
// optimization, never a source of truth.
func Open(path string) *Store {
	s := &Store{path: path, entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.entries = make(map[string]Entry)
	}
	return s
}

// FileFor returns the store file path for one normalized-options hash, so
// different option sets never collide.
func FileFor(dataDir, optionsHash string) string {
	return filepath.Join(dataDir, fmt.Sprintf("targets-%s.json", optionsHash))
}

// Get returns the cached entry for key.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	return entry, ok
}

// Put records the entry for key.
func (s *Store) Put(key string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Flush rewrites the store file in full.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal target cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write target cache: %w", err)
	}
	return nil
}
