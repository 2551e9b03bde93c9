package config

import (
	"fmt"
	"strings"
)

// normalize expands paths and canonicalizes kind declarations in place.
func (c *Config) normalize() error {
	for i, dir := range c.Paths.SearchDirs {
		expanded, err := ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("search dir %q: %w", dir, err)
		}
		c.Paths.SearchDirs[i] = expanded
	}

	stateDir, err := ExpandPath(c.Paths.StateDir)
	if err != nil {
		return fmt.Errorf("state dir: %w", err)
	}
	c.Paths.StateDir = stateDir

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	for name, kind := range c.Kinds {
		kind.Extension = strings.TrimSpace(kind.Extension)
		if kind.Extension != "" && !strings.HasPrefix(kind.Extension, ".") {
			kind.Extension = "." + kind.Extension
		}
		c.Kinds[name] = kind
	}
	return nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if len(c.Paths.SearchDirs) == 0 {
		return fmt.Errorf("config: at least one search dir is required")
	}
	if len(c.Kinds) == 0 {
		return fmt.Errorf("config: at least one set kind is required")
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Logging.Format)
	}

	extensions := make(map[string]string, len(c.Kinds))
	for name, kind := range c.Kinds {
		if len(kind.Files) == 0 {
			return fmt.Errorf("config: kind %s declares no file slots", name)
		}
		slots := make(map[string]struct{}, len(kind.Files))
		for _, slot := range kind.Files {
			if strings.TrimSpace(slot) == "" {
				return fmt.Errorf("config: kind %s has a blank file slot", name)
			}
			if _, dup := slots[slot]; dup {
				return fmt.Errorf("config: kind %s repeats file slot %s", name, slot)
			}
			slots[slot] = struct{}{}
		}
		if kind.Extension == "" {
			return fmt.Errorf("config: kind %s has no metadata extension", name)
		}
		if other, taken := extensions[kind.Extension]; taken {
			return fmt.Errorf("config: kinds %s and %s share extension %s", other, name, kind.Extension)
		}
		extensions[kind.Extension] = name
	}
	return nil
}
