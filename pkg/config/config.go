package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings for ax.
type Config struct {
	// LibraryPath overrides the default library document location.
	LibraryPath string `yaml:"library_path"`

	// Listing / search
	DefaultSort      string `yaml:"default_sort"` // "name", "created", "modified", "size", "author", "type"
	ReverseSort      bool   `yaml:"reverse_sort"`
	MaxSearchResults int    `yaml:"max_search_results"`
	ShowArchived     bool   `yaml:"show_archived"`

	// UI
	DisplayDateFormat string `yaml:"display_date_format"`
	ColorTheme        string `yaml:"color_theme"`
	TableWidth        int    `yaml:"table_width"`

	// Daemon
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// Logging
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"
	LogFile  bool   `yaml:"log_file"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() *Config {
	return &Config{
		LibraryPath:       "",
		DefaultSort:       "name",
		ReverseSort:       false,
		MaxSearchResults:  100,
		ShowArchived:      false,
		DisplayDateFormat: "2006-01-02",
		ColorTheme:        "auto",
		TableWidth:        0,
		WatchDebounceMS:   500,
		LogLevel:          "info",
		LogFile:           false,
	}
}

// Load reads configuration from the specified file path. A missing file is
// not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = "name"
	}
	if !isValidSort(cfg.DefaultSort) {
		cfg.DefaultSort = "name"
	}
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 100
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = "2006-01-02"
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// isValidSort checks if the sort criterion is one we understand.
func isValidSort(sortBy string) bool {
	validSorts := []string{"name", "created", "modified", "size", "author", "type"}
	for _, valid := range validSorts {
		if sortBy == valid {
			return true
		}
	}
	return false
}
