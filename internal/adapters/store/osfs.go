package store

import (
	"io/fs"
	"os"
	"time"

	"github.com/kamal-hamza/ax-cli/internal/core/ports"
)

// OSFileSystem implements the FileSystem port against the real disk.
type OSFileSystem struct{}

var _ ports.FileSystem = OSFileSystem{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// SystemClock implements the Clock port with the wall clock.
type SystemClock struct{}

var _ ports.Clock = SystemClock{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
