package ports

import (
	"context"
	"io/fs"
	"time"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
)

// LibraryStore defines the port for loading and saving the persisted
// library document. Implementations own a staleness-aware cache; Load never
// fails, since a missing or corrupt document degrades to an empty library.
type LibraryStore interface {
	// Load returns the library persisted at path, serving a cached
	// snapshot when the on-disk modification time has not advanced.
	Load(ctx context.Context, path string) *domain.Library

	// Save stamps the library, updates the cache synchronously, and
	// queues the disk write. A subsequent Load observes the new content
	// immediately, even before the write lands.
	Save(ctx context.Context, lib *domain.Library, path string) error

	// ForceReload invalidates the cache entry for path before loading.
	ForceReload(ctx context.Context, path string) *domain.Library

	// Exists reports whether a document exists at path.
	Exists(path string) bool

	// Stat returns file metadata for the document, or an error when it
	// is absent.
	Stat(path string) (fs.FileInfo, error)

	// Flush blocks until all queued writes have completed.
	Flush()
}

// FileSystem abstracts the disk operations the engine performs, so stores
// and validators can run against an in-memory fake in tests.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, perm fs.FileMode) error
}

// Clock supplies the current time. Injected so timestamp-sensitive logic
// (staleness checks, modified dates) is deterministic in tests.
type Clock interface {
	Now() time.Time
}
