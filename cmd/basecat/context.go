package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"basecat/internal/baseset"
	"basecat/internal/catalogdb"
	"basecat/internal/checksum"
	"basecat/internal/config"
	"basecat/internal/logging"
	"basecat/internal/registry"
	"basecat/internal/scanner"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openStore() (*catalogdb.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalogdb.Open(cfg.DatabasePath())
}

// kindCatalog bundles a registry with the configuration it was built from.
type kindCatalog struct {
	name string
	kind config.Kind
	reg  *registry.Registry[*baseset.Set]
}

func (c *commandContext) newCatalog(name string) (*kindCatalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	kind, ok := cfg.Kinds[name]
	if !ok {
		return nil, fmt.Errorf("unknown set kind %q (configured: %s)", name, strings.Join(cfg.KindNames(), ", "))
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	parser := &baseset.Parser{
		Kind: baseset.Kind{
			Label:       name,
			FileSlots:   kind.Files,
			ChecksumLen: checksum.MD5Size,
		},
		Verifier:        checksum.MD5{},
		AllowEmptyFiles: kind.AllowEmptyFiles,
		Logger:          logging.NewComponentLogger(logger, "parser"),
	}

	reg := registry.New(registry.Options[*baseset.Set]{
		Label:  name,
		Load:   parser.Load,
		Logger: logging.NewComponentLogger(logger, "registry"),
		OnSelect: func(s *baseset.Set) {
			// Stand-in for the external files-changed notification: other
			// subsystems learn about selection changes from the log.
			logger.Debug("active set changed",
				logging.String("kind", name),
				logging.String("name", s.Name()),
			)
		},
	})

	return &kindCatalog{name: name, kind: kind, reg: reg}, nil
}

// loadCatalog builds the registry for a kind by scanning the configured
// search directories, then applies the persisted or configured selection.
func (c *commandContext) loadCatalog(ctx context.Context, name string, extraDirs []string) (*kindCatalog, scanner.Summary, error) {
	cat, err := c.newCatalog(name)
	if err != nil {
		return nil, scanner.Summary{}, err
	}
	cfg, _ := c.ensureConfig()
	logger, _ := c.ensureLogger()

	dirs := append(append([]string(nil), cfg.Paths.SearchDirs...), extraDirs...)
	summary, err := scanner.Scan(ctx, cat.reg, name, cat.kind.Extension, dirs,
		logging.NewComponentLogger(logger, "scanner"))
	if err != nil {
		return nil, summary, err
	}

	c.applySelection(ctx, cat)
	return cat, summary, nil
}

// applySelection restores the active set: the configured preference wins,
// then the stored selection, then the automatic best-set policy.
func (c *commandContext) applySelection(ctx context.Context, cat *kindCatalog) {
	logger, _ := c.ensureLogger()

	name := cat.kind.Preferred
	if name == "" {
		store, err := c.openStore()
		if err == nil {
			defer store.Close()
			if stored, err := store.Selection(ctx, cat.name); err == nil {
				name = stored
			}
		} else {
			logger.Warn("catalog store unavailable", logging.Error(err))
		}
	}

	if cat.reg.Select(name) {
		return
	}
	if name != "" {
		logger.Warn("selected set unavailable, falling back to best",
			logging.String("kind", cat.name),
			logging.String("name", name),
		)
		_ = cat.reg.Select("")
	}
}
