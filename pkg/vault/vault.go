package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// Vault represents the managed storage directory for ax: the library
// document, thumbnail cache, and log directory all live under one root.
type Vault struct {
	RootPath       string
	LibraryPath    string
	ThumbnailsPath string
	LogsPath       string
	ConfigPath     string
}

// New creates a new Vault instance with XDG-compliant paths.
func New() (*Vault, error) {
	rootPath, rootErr := getVaultRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine vault root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return &Vault{
		RootPath:       rootPath,
		LibraryPath:    filepath.Join(rootPath, "library.json"),
		ThumbnailsPath: filepath.Join(rootPath, "thumbnails"),
		LogsPath:       filepath.Join(rootPath, "logs"),
		ConfigPath:     configPath,
	}, nil
}

// getVaultRoot returns the vault root directory path.
// Follows XDG Base Directory specification on Unix and uses AppData on Windows.
func getVaultRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "ax"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "ax"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "ax"), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "ax", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "ax-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "ax", "config.yaml"), nil
}

// Initialize creates the vault directory structure if it doesn't exist.
func (v *Vault) Initialize() error {
	directories := []string{
		v.RootPath,
		v.ThumbnailsPath,
		v.LogsPath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the vault has been initialized.
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ThumbnailPath returns the full path for a cached thumbnail file.
func (v *Vault) ThumbnailPath(filename string) string {
	return filepath.Join(v.ThumbnailsPath, filename)
}
