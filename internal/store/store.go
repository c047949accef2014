package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Collection names. Each one maps to <dataDir>/<name>.json holding the
// full pretty-printed serialization of the collection.
const (
	Chats         = "chats"
	Contacts      = "contacts"
	Ratings       = "ratings"
	Notifications = "notifications"
	Settings      = "settings"
)

// Store persists one JSON document per collection on local disk.
// Every write is a whole-file overwrite; there is no append log, no
// schema version, no checksum. Mutations must run under WithLock so
// read-modify-write cycles on one collection never interleave.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string) *Store {
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// WithLock serializes fn against all other WithLock calls for the same
// collection. One exclusive section per collection key.
func (s *Store) WithLock(collection string, fn func() error) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// Read loads a collection into out. A missing, unreadable, or corrupt
// file is recovered silently: out keeps its zero value and the failure is
// logged, never returned.
func (s *Store) Read(collection string, out any) error {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store: read %s.json, treating as empty: %v", collection, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("store: %s.json is corrupt, treating as empty: %v", collection, err)
		return nil
	}
	return nil
}

// Write overwrites the collection file with the pretty-printed
// serialization of v, creating the data directory if needed.
func (s *Store) Write(collection string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", collection, err)
	}
	if err := os.WriteFile(s.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", collection, err)
	}
	return nil
}
