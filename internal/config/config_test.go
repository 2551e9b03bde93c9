package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Kinds["graphics"].Files) != 6 {
		t.Errorf("graphics slots = %v", cfg.Kinds["graphics"].Files)
	}
	if !cfg.Kinds["music"].AllowEmptyFiles {
		t.Error("music kind should allow empty files")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Language != "en" {
		t.Errorf("language = %q", cfg.Display.Language)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("format = %q", cfg.Logging.Format)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
search_dirs = ["` + dir + `/sets"]
state_dir = "` + dir + `/state"

[display]
language = "de"

[kinds.graphics]
files = ["base", "extra"]
extension = "gfx"
preferred = "My Graphics"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Language != "de" {
		t.Errorf("language = %q", cfg.Display.Language)
	}
	// Extensions are normalized to a leading dot.
	if got := cfg.Kinds["graphics"].Extension; got != ".gfx" {
		t.Errorf("extension = %q", got)
	}
	if got := cfg.Kinds["graphics"].Preferred; got != "My Graphics" {
		t.Errorf("preferred = %q", got)
	}
	if cfg.DatabasePath() != filepath.Join(dir, "state", "catalog.db") {
		t.Errorf("db path = %q", cfg.DatabasePath())
	}
}

func TestValidateRejectsBadKinds(t *testing.T) {
	cases := map[string]func(*Config){
		"no slots":            func(c *Config) { c.Kinds["graphics"] = Kind{Extension: ".g"} },
		"duplicate slot":      func(c *Config) { c.Kinds["graphics"] = Kind{Files: []string{"a", "a"}, Extension: ".g"} },
		"blank slot":          func(c *Config) { c.Kinds["graphics"] = Kind{Files: []string{" "}, Extension: ".g"} },
		"no extension":        func(c *Config) { c.Kinds["graphics"] = Kind{Files: []string{"a"}} },
		"shared extension":    func(c *Config) { k := c.Kinds["sounds"]; k.Extension = ".gset"; c.Kinds["sounds"] = k },
		"unknown log format":  func(c *Config) { c.Logging.Format = "yaml" },
		"no kinds at all":     func(c *Config) { c.Kinds = nil },
		"no search dirs":      func(c *Config) { c.Paths.SearchDirs = nil },
	}
	for name, mutate := range cases {
		cfg := Default()
		if err := cfg.normalize(); err != nil {
			t.Fatal(err)
		}
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: validation passed", name)
		}
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/sets")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, home) {
		t.Errorf("ExpandPath = %q, want prefix %q", got, home)
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config does not validate: %v", err)
	}
}
