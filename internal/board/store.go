package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/google/uuid"
)

// CompletionStore is the persisted order-id -> completed mapping. A missing
// key reads as false. Entries are never pruned; the map only grows.
type CompletionStore interface {
	Get(id uuid.UUID) bool
	Set(id uuid.UUID, done bool) error
}

// MemoryStore keeps completion flags in memory only. Used in tests and as a
// fallback when no completion file is configured.
type MemoryStore struct {
	mu    sync.Mutex
	flags map[uuid.UUID]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[uuid.UUID]bool)}
}

func (s *MemoryStore) Get(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[id]
}

func (s *MemoryStore) Set(id uuid.UUID, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[id] = done
	return nil
}

// FileStore persists completion flags as a JSON object in a single file,
// scoped to the installation the way browser local storage is scoped to a
// client. The file is read once at open; every Set rewrites it.
type FileStore struct {
	mu    sync.Mutex
	path  string
	flags map[string]bool
}

func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, flags: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read completion file: %w", err)
	}
	if err := json.Unmarshal(data, &s.flags); err != nil {
		return nil, fmt.Errorf("parse completion file: %w", err)
	}

	return s, nil
}

func (s *FileStore) Get(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[id.String()]
}

func (s *FileStore) Set(id uuid.UUID, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags[id.String()] = done

	data, err := json.Marshal(s.flags)
	if err != nil {
		return fmt.Errorf("marshal completion flags: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write completion file: %w", err)
	}
	return nil
}
