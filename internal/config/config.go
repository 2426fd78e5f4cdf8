// Package config handles catalog discovery and configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents per-catalog settings stored in .shelf/config.json.
type Config struct {
	AllowDuplicateISBN bool   `json:"allow_duplicate_isbn"`   // Let `shelf add` store a second item with an existing ISBN
	DefaultSort        string `json:"default_sort,omitempty"` // Sort for `shelf list`: title, author, or empty for insertion order
}

const (
	ShelfDir    = ".shelf"
	ConfigFile  = "config.json"
	CatalogFile = "catalog.json"
)

// ValidSorts lists the supported default_sort values.
var ValidSorts = []string{"title", "author"}

// Default returns the configuration written by `shelf init`.
func Default() *Config {
	return &Config{}
}

// ShelfPath returns the path to the .shelf directory from a root path.
func ShelfPath(root string) string {
	return filepath.Join(root, ShelfDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ShelfDir, ConfigFile)
}

// CatalogPath returns the path to catalog.json from a root path.
func CatalogPath(root string) string {
	return filepath.Join(root, ShelfDir, CatalogFile)
}

// IsRepository checks if the given path contains a .shelf directory.
func IsRepository(root string) bool {
	info, err := os.Stat(ShelfPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a .shelf directory.
// Returns the directory containing it or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no catalog found (no %s directory in %s or its parents)", ShelfDir, start)
		}
		abs = parent
	}
}

// Load reads configuration from the .shelf directory at root. A missing
// config file yields the defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := ValidateDefaultSort(cfg.DefaultSort); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the .shelf directory at root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ValidateDefaultSort checks that the sort value is valid.
func ValidateDefaultSort(sort string) error {
	if sort == "" {
		return nil // Insertion order
	}

	for _, valid := range ValidSorts {
		if sort == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid default_sort: %s (valid: %v)", sort, ValidSorts)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
