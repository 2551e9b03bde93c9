package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// SearchDirs are scanned for set metadata documents.
	SearchDirs []string `toml:"search_dirs"`
	// StateDir holds the catalog database and the scan lock.
	StateDir string `toml:"state_dir"`
}

// Display contains presentation preferences.
type Display struct {
	// Language is the preferred description language (BCP 47).
	Language string `toml:"language"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Kind declares one family of base sets.
type Kind struct {
	// Files is the ordered table of required file slots.
	Files []string `toml:"files"`
	// Extension selects which metadata documents belong to this kind.
	Extension string `toml:"extension"`
	// AllowEmptyFiles accepts slots declared with an empty filename.
	AllowEmptyFiles bool `toml:"allow_empty_files"`
	// Preferred names the set to select after a scan; empty selects the
	// stored or best available set automatically.
	Preferred string `toml:"preferred"`
}

// Config encapsulates all configuration values for basecat.
type Config struct {
	Paths   Paths           `toml:"paths"`
	Display Display         `toml:"display"`
	Logging Logging         `toml:"logging"`
	Kinds   map[string]Kind `toml:"kinds"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/basecat/config.toml")
}

// Load locates, parses, and validates a configuration file. An empty path
// uses the default location; a missing file yields the defaults. The
// returned config has all path fields expanded and normalized.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	if exists {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		def, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = def
	} else {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		path = expanded
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return path, true, nil
}

// ExpandPath resolves a leading tilde against the user's home directory
// and returns an absolute, cleaned path.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return filepath.Clean(abs), nil
}

// EnsureDirectories creates the state directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.StateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	return nil
}

// DatabasePath returns the catalog database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.StateDir, "catalog.db")
}

// LockPath returns the scan lock location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "scan.lock")
}

// KindNames returns the configured kind names, sorted.
func (c *Config) KindNames() []string {
	names := make([]string, 0, len(c.Kinds))
	for name := range c.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteSample writes the annotated sample configuration to path.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
