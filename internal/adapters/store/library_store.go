package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/ports"
)

// writeQueueSize bounds the number of pending background writes. Saves
// block once the queue is full, which keeps memory bounded when the disk
// is slow.
const writeQueueSize = 16

type writeJob struct {
	path string
	data []byte
}

// Store maps the persisted library document to an in-memory Library and
// avoids redundant reads with a staleness-aware cache.
//
// Load never fails: a missing, empty, or corrupt document degrades to a
// fresh empty library with a logged warning. Save updates the cache
// synchronously and hands the disk write to a single background worker, so
// the last successful in-memory state always wins over a failed write.
type Store struct {
	fs    ports.FileSystem
	clock ports.Clock
	log   *slog.Logger

	mu         sync.Mutex
	cached     *domain.Library
	cachedPath string
	cachedTime time.Time

	jobs    chan writeJob
	pending sync.WaitGroup
	done    chan struct{}
}

var _ ports.LibraryStore = (*Store)(nil)

// New creates a store with injected file system and clock. Close must be
// called to stop the write worker.
func New(filesystem ports.FileSystem, clock ports.Clock, log *slog.Logger) *Store {
	s := &Store{
		fs:    filesystem,
		clock: clock,
		log:   log,
		jobs:  make(chan writeJob, writeQueueSize),
		done:  make(chan struct{}),
	}
	go s.writeWorker()
	return s
}

// Load returns the library persisted at path. When a cached snapshot exists
// for path and the on-disk modification time has not advanced past the
// recorded one, the cached instance is returned without touching the disk.
func (s *Store) Load(ctx context.Context, path string) *domain.Library {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(path)
}

// Save stamps lastUpdated, replaces the cache entry, and queues the
// serialized document for the background writer. The only error surfaced
// is a marshal failure; write failures are logged by the worker and the
// cache is not rolled back.
func (s *Store) Save(ctx context.Context, lib *domain.Library, path string) error {
	now := s.clock.Now()
	lib.LastUpdated = now
	lib.Normalize()

	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal library document %s: %v", domain.ErrIOFailure, path, err)
	}

	s.mu.Lock()
	s.cached = lib
	// The cache timestamp only moves forward. A document carrying a future
	// mtime (clock skew, cloud sync) must not make the fresh cache look
	// stale on the next load.
	if s.cachedPath != path || now.After(s.cachedTime) {
		s.cachedTime = now
	}
	s.cachedPath = path
	s.mu.Unlock()

	s.pending.Add(1)
	s.jobs <- writeJob{path: path, data: data}
	return nil
}

// ForceReload drops the cache entry for path before loading.
func (s *Store) ForceReload(ctx context.Context, path string) *domain.Library {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cachedPath == path {
		s.cached = nil
		s.cachedPath = ""
		s.cachedTime = time.Time{}
	}
	return s.loadLocked(path)
}

// Exists reports whether a document exists at path.
func (s *Store) Exists(path string) bool {
	_, err := s.fs.Stat(path)
	return err == nil
}

// Stat returns file metadata for the document at path.
func (s *Store) Stat(path string) (fs.FileInfo, error) {
	return s.fs.Stat(path)
}

// Flush blocks until every queued write has completed.
func (s *Store) Flush() {
	s.pending.Wait()
}

// Close flushes pending writes and stops the worker.
func (s *Store) Close() {
	s.pending.Wait()
	close(s.jobs)
	<-s.done
}

func (s *Store) loadLocked(path string) *domain.Library {
	info, statErr := s.fs.Stat(path)

	if s.cached != nil && s.cachedPath == path {
		if statErr != nil || !info.ModTime().After(s.cachedTime) {
			return s.cached
		}
	}

	lib := s.readDocument(path, statErr)
	lib.RebuildIndex()

	s.cached = lib
	s.cachedPath = path
	if statErr == nil {
		s.cachedTime = info.ModTime()
	} else {
		s.cachedTime = time.Time{}
	}
	return lib
}

// readDocument parses the document at path, returning an empty library on
// any failure. Missing files are expected on first run and logged at debug;
// parse failures mean a damaged document and are logged as errors.
func (s *Store) readDocument(path string, statErr error) *domain.Library {
	if statErr != nil {
		s.log.Debug("library document missing, starting empty", "path", path)
		return domain.NewLibrary()
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		s.log.Warn("failed to read library document, starting empty", "path", path, "error", err)
		return domain.NewLibrary()
	}
	if len(data) == 0 {
		s.log.Warn("library document is empty, starting empty", "path", path)
		return domain.NewLibrary()
	}

	lib := domain.NewLibrary()
	if err := json.Unmarshal(data, lib); err != nil {
		s.log.Error("failed to parse library document, starting empty", "path", path, "error", err)
		return domain.NewLibrary()
	}
	return lib
}

func (s *Store) writeWorker() {
	defer close(s.done)
	for job := range s.jobs {
		s.performWrite(job)
		s.pending.Done()
	}
}

func (s *Store) performWrite(job writeJob) {
	if err := s.fs.MkdirAll(filepath.Dir(job.path), 0755); err != nil {
		s.log.Error("failed to create library directory", "path", job.path, "error", err)
		return
	}
	if err := s.fs.WriteFile(job.path, job.data, 0644); err != nil {
		s.log.Error("failed to write library document", "path", job.path, "error", err)
		return
	}

	// Record the post-write modification time so the next Load does not
	// mistake our own write for an external change.
	info, err := s.fs.Stat(job.path)
	if err != nil {
		return
	}
	s.mu.Lock()
	if s.cachedPath == job.path && info.ModTime().After(s.cachedTime) {
		s.cachedTime = info.ModTime()
	}
	s.mu.Unlock()
}
