package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/thisispriyanshii/edviron-frontend/internal/model"
)

// ErrNoSession is returned by Store.Load when nothing has been saved.
var ErrNoSession = errors.New("no saved session")

// Saved is the persisted credential.
type Saved struct {
	SavedAt     time.Time  `json:"saved_at"`
	AccessToken string     `json:"access_token"`
	User        model.User `json:"user"`
}

// Store persists the credential between runs.
type Store interface {
	Load() (Saved, error)
	Save(Saved) error
	Clear() error
}

// FileStore keeps the credential in a JSON file readable only by its owner.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the saved credential.
func (f *FileStore) Load() (Saved, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Saved{}, ErrNoSession
	}
	if err != nil {
		return Saved{}, fmt.Errorf("failed to read session: %w", err)
	}

	var saved Saved
	if err := json.Unmarshal(data, &saved); err != nil {
		return Saved{}, fmt.Errorf("failed to decode session %s: %w", f.path, err)
	}
	if saved.AccessToken == "" {
		return Saved{}, ErrNoSession
	}
	return saved, nil
}

// Save writes the credential, creating the parent directory when needed.
func (f *FileStore) Save(saved Saved) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the file. A missing file is not an error.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// MemoryStore keeps the credential for the life of the process.
type MemoryStore struct {
	saved *Saved
	mu    sync.Mutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (m *MemoryStore) Load() (Saved, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return Saved{}, ErrNoSession
	}
	return *m.saved, nil
}

// Save implements Store.
func (m *MemoryStore) Save(saved Saved) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = &saved
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
