package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/kamal-hamza/ax-cli/internal/core/domain"
	"github.com/kamal-hamza/ax-cli/internal/core/ports/mocks"
	"github.com/kamal-hamza/ax-cli/pkg/logging"
)

const testPath = "/vault/library.json"

func newTestStore(t *testing.T) (*Store, *mocks.MockFileSystem, *mocks.MockClock) {
	t.Helper()
	fs := mocks.NewMockFileSystem()
	clock := mocks.NewMockClock(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC))
	s := New(fs, clock, logging.NewWriter(io.Discard, logging.ParseLevel("debug")).Logger)
	t.Cleanup(s.Close)
	return s, fs, clock
}

func seedDocument(t *testing.T, fs *mocks.MockFileSystem, modTime time.Time, assets ...domain.Asset) {
	t.Helper()
	lib := domain.NewLibrary()
	for _, asset := range assets {
		lib.Put(asset)
	}
	lib.Normalize()
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	fs.Seed(testPath, data, modTime)
}

func newStoredAsset(t *testing.T, id domain.AssetID, name string) domain.Asset {
	t.Helper()
	asset, err := domain.NewAsset(name, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewAsset: %v", err)
	}
	asset.ID = id
	return asset
}

func TestLoadMissingDocument(t *testing.T) {
	s, _, _ := newTestStore(t)

	lib := s.Load(context.Background(), testPath)
	if lib == nil {
		t.Fatal("Load returned nil")
	}
	if lib.Count() != 0 {
		t.Errorf("count = %d, want empty library", lib.Count())
	}
}

func TestLoadCorruptDocument(t *testing.T) {
	s, fs, _ := newTestStore(t)
	fs.Seed(testPath, []byte("{not json"), time.Now())

	lib := s.Load(context.Background(), testPath)
	if lib.Count() != 0 {
		t.Errorf("corrupt document must degrade to empty, got %d assets", lib.Count())
	}
}

func TestLoadServesCachedSnapshotWhileFresh(t *testing.T) {
	s, fs, _ := newTestStore(t)
	modTime := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	seedDocument(t, fs, modTime, newStoredAsset(t, "hat-1", "Hat"))

	ctx := context.Background()
	first := s.Load(ctx, testPath)
	second := s.Load(ctx, testPath)

	if first != second {
		t.Error("expected the same cached instance while mtime is unchanged")
	}
}

func TestLoadReloadsAfterExternalChange(t *testing.T) {
	s, fs, _ := newTestStore(t)
	modTime := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	seedDocument(t, fs, modTime, newStoredAsset(t, "hat-1", "Hat"))

	ctx := context.Background()
	first := s.Load(ctx, testPath)
	if first.Count() != 1 {
		t.Fatalf("count = %d, want 1", first.Count())
	}

	// Another process rewrites the document with a second asset.
	seedDocument(t, fs, modTime.Add(time.Minute),
		newStoredAsset(t, "hat-1", "Hat"),
		newStoredAsset(t, "boots-1", "Boots"))

	second := s.Load(ctx, testPath)
	if second == first {
		t.Fatal("expected a reload after the mtime advanced")
	}
	if second.Count() != 2 {
		t.Errorf("count = %d, want 2", second.Count())
	}
}

func TestSaveIsVisibleBeforeWriteLands(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	lib := s.Load(ctx, testPath)
	lib.Put(newStoredAsset(t, "hat-1", "Hat"))
	if err := s.Save(ctx, lib, testPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// No Flush: the read must hit the refreshed cache regardless of
	// whether the background write has landed.
	got := s.Load(ctx, testPath)
	if !got.Has("hat-1") {
		t.Error("saved asset not visible on immediate load")
	}
}

func TestSaveKeepsCacheFreshWithFutureDocumentTime(t *testing.T) {
	s, fs, clock := newTestStore(t)
	ctx := context.Background()

	// The on-disk document carries a modification time ahead of the clock,
	// as happens with clock skew or cloud-synced files. The write is made
	// to fail so the file keeps its future mtime.
	futureTime := clock.Now().Add(2 * time.Hour)
	seedDocument(t, fs, futureTime, newStoredAsset(t, "hat-1", "Hat"))
	fs.SetWriteError(errors.New("disk full"))

	lib := s.Load(ctx, testPath)
	lib.Put(newStoredAsset(t, "boots-1", "Boots"))
	if err := s.Save(ctx, lib, testPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := s.Load(ctx, testPath)
	if got != lib {
		t.Fatal("cache considered stale after Save under a future document mtime")
	}
	if !got.Has("boots-1") {
		t.Error("just-saved asset not visible on immediate load")
	}

	// A genuine external change past the future mtime still reloads.
	seedDocument(t, fs, futureTime.Add(time.Minute), newStoredAsset(t, "hat-1", "Hat"))
	if s.Load(ctx, testPath) == lib {
		t.Error("external change after the future mtime was not picked up")
	}
}

func TestSaveWritesDocument(t *testing.T) {
	s, fs, _ := newTestStore(t)
	ctx := context.Background()

	lib := s.Load(ctx, testPath)
	lib.Put(newStoredAsset(t, "hat-1", "Hat"))
	if err := s.Save(ctx, lib, testPath); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Flush()

	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	parsed := domain.NewLibrary()
	if err := json.Unmarshal(data, parsed); err != nil {
		t.Fatalf("written document does not parse: %v", err)
	}
	parsed.RebuildIndex()
	if !parsed.Has("hat-1") {
		t.Error("written document is missing the saved asset")
	}
	if parsed.LastUpdated.IsZero() {
		t.Error("lastUpdated not stamped")
	}
}

func TestOwnWriteDoesNotLookExternal(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	lib := s.Load(ctx, testPath)
	lib.Put(newStoredAsset(t, "hat-1", "Hat"))
	if err := s.Save(ctx, lib, testPath); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Flush()

	// The worker's write bumped the file mtime; the cache must have
	// absorbed that so the next load still serves the cached instance.
	got := s.Load(ctx, testPath)
	if got != lib {
		t.Error("own write was mistaken for an external change")
	}
}

func TestFailedWriteKeepsCache(t *testing.T) {
	s, fs, _ := newTestStore(t)
	ctx := context.Background()
	fs.SetWriteError(errors.New("disk full"))

	lib := s.Load(ctx, testPath)
	lib.Put(newStoredAsset(t, "hat-1", "Hat"))
	if err := s.Save(ctx, lib, testPath); err != nil {
		t.Fatalf("Save must not surface write errors, got %v", err)
	}
	s.Flush()

	// The in-memory state survives the failed write.
	if !s.Load(ctx, testPath).Has("hat-1") {
		t.Error("cache rolled back after a failed write")
	}
}

func TestForceReload(t *testing.T) {
	s, fs, _ := newTestStore(t)
	ctx := context.Background()
	modTime := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	seedDocument(t, fs, modTime, newStoredAsset(t, "hat-1", "Hat"))

	first := s.Load(ctx, testPath)
	reloaded := s.ForceReload(ctx, testPath)

	if reloaded == first {
		t.Error("ForceReload must bypass the cache")
	}
	if reloaded.Count() != 1 {
		t.Errorf("count = %d, want 1", reloaded.Count())
	}
}

func TestExists(t *testing.T) {
	s, fs, _ := newTestStore(t)

	if s.Exists(testPath) {
		t.Error("Exists = true for a missing document")
	}
	fs.Seed(testPath, []byte("{}"), time.Now())
	if !s.Exists(testPath) {
		t.Error("Exists = false for a seeded document")
	}
}
