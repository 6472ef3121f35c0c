package mocks

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MockFileSystem is an in-memory implementation of the FileSystem port.
type MockFileSystem struct {
	mu       sync.Mutex
	files    map[string]*mockFile
	readErr  error
	writeErr error
	writes   []string
}

type mockFile struct {
	data    []byte
	modTime time.Time
}

// NewMockFileSystem creates an empty in-memory file system.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string]*mockFile),
	}
}

// Seed places a file with the given content and modification time.
func (m *MockFileSystem) Seed(path string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, modTime: modTime}
}

// Touch bumps a file's modification time without changing its content.
func (m *MockFileSystem) Touch(path string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[path]; ok {
		f.modTime = modTime
	}
}

// SetReadError makes subsequent reads fail with err.
func (m *MockFileSystem) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// SetWriteError makes subsequent writes fail with err.
func (m *MockFileSystem) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes returns the paths written so far, in order.
func (m *MockFileSystem) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}

// ReadFile returns the content of a seeded file.
func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	f, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	data := make([]byte, len(f.data))
	copy(data, f.data)
	return data, nil
}

// WriteFile stores content, advancing the file's modification time.
func (m *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	modTime := time.Now()
	if f, ok := m.files[path]; ok && !f.modTime.Before(modTime) {
		modTime = f.modTime.Add(time.Second)
	}
	m.files[path] = &mockFile{data: stored, modTime: modTime}
	m.writes = append(m.writes, path)
	return nil
}

// Stat returns metadata for a seeded file.
func (m *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mockFileInfo{name: filepath.Base(path), size: int64(len(f.data)), modTime: f.modTime}, nil
}

// MkdirAll is a no-op for the in-memory file system.
func (m *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return nil
}

type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return i.size }
func (i mockFileInfo) Mode() os.FileMode  { return 0644 }
func (i mockFileInfo) ModTime() time.Time { return i.modTime }
func (i mockFileInfo) IsDir() bool        { return false }
func (i mockFileInfo) Sys() any           { return nil }

// MockClock is a settable Clock implementation.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a clock frozen at the given instant.
func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

// Now returns the frozen instant.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to a specific instant.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
