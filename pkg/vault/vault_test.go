package vault

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func TestNewUsesXDGPaths(t *testing.T) {
	v := newTestVault(t)

	if filepath.Base(v.RootPath) != "ax" {
		t.Errorf("RootPath = %q, want an ax directory", v.RootPath)
	}
	if v.LibraryPath != filepath.Join(v.RootPath, "library.json") {
		t.Errorf("LibraryPath = %q", v.LibraryPath)
	}
	if filepath.Base(v.ConfigPath) != "config.yaml" {
		t.Errorf("ConfigPath = %q", v.ConfigPath)
	}
}

func TestInitializeAndExists(t *testing.T) {
	v := newTestVault(t)

	if v.Exists() {
		t.Fatal("vault must not exist before Initialize")
	}

	if err := v.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if !v.Exists() {
		t.Error("vault missing after Initialize")
	}
	for _, dir := range []string{v.RootPath, v.ThumbnailsPath, v.LogsPath} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created (err %v)", dir, err)
		}
	}

	// Initialize is idempotent.
	if err := v.Initialize(); err != nil {
		t.Errorf("second Initialize: %v", err)
	}
}

func TestThumbnailPath(t *testing.T) {
	v := newTestVault(t)

	got := v.ThumbnailPath("hat-1.png")
	want := filepath.Join(v.ThumbnailsPath, "hat-1.png")
	if got != want {
		t.Errorf("ThumbnailPath = %q, want %q", got, want)
	}
}
