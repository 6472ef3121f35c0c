package mocks

import (
	"context"
	"io/fs"
	"sync"
	"time"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
)

// MockLibraryStore is an in-memory implementation of the LibraryStore port
// for service tests. It keeps one library per path and records save calls.
type MockLibraryStore struct {
	mu        sync.Mutex
	libraries map[string]*domain.Library
	saveErr   error
	saveCount int
	clock     *MockClock
}

// NewMockLibraryStore creates an empty store.
func NewMockLibraryStore() *MockLibraryStore {
	return &MockLibraryStore{
		libraries: make(map[string]*domain.Library),
		clock:     NewMockClock(time.Now()),
	}
}

// SetSaveError makes subsequent saves fail with err.
func (m *MockLibraryStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SaveCount returns how many saves have been performed.
func (m *MockLibraryStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCount
}

// Load returns the library stored for path, or a fresh empty one.
func (m *MockLibraryStore) Load(ctx context.Context, path string) *domain.Library {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lib, ok := m.libraries[path]; ok {
		return lib
	}
	lib := domain.NewLibrary()
	m.libraries[path] = lib
	return lib
}

// Save stores the library for path.
func (m *MockLibraryStore) Save(ctx context.Context, lib *domain.Library, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	lib.LastUpdated = m.clock.Now()
	m.libraries[path] = lib
	m.saveCount++
	return nil
}

// ForceReload behaves like Load; the mock has no disk to go stale against.
func (m *MockLibraryStore) ForceReload(ctx context.Context, path string) *domain.Library {
	return m.Load(ctx, path)
}

// Exists reports whether a library has been saved for path.
func (m *MockLibraryStore) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.libraries[path]
	return ok
}

// Stat reports not-exist unless a library has been saved for path.
func (m *MockLibraryStore) Stat(path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.libraries[path]; !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mockFileInfo{name: path, modTime: m.clock.Now()}, nil
}

// Flush is a no-op; mock saves are synchronous.
func (m *MockLibraryStore) Flush() {}
