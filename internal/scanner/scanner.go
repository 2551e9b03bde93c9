package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"basecat/internal/logging"
)

// Catalog accepts candidate metadata files. Satisfied by
// registry.Registry.
type Catalog interface {
	AddCandidate(path string) bool
}

// Summary reports what one scan did.
type Summary struct {
	ScanID     string
	Kind       string
	Candidates int
	Added      int
	Rejected   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Scan walks dirs for metadata documents carrying ext and offers each to
// the catalog. Directories that do not exist are skipped. Failed
// candidates are counted, never fatal: the catalog keeps whatever parsed.
func Scan(ctx context.Context, catalog Catalog, kind, ext string, dirs []string, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	summary := Summary{
		ScanID:    uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now(),
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				if entry == nil && errors.Is(err, fs.ErrNotExist) {
					// Search dirs are optional until populated.
					logger.Debug("search dir missing", logging.String("dir", dir))
					return filepath.SkipAll
				}
				logger.Warn("scan error",
					logging.String("path", path),
					logging.Error(err),
				)
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ext) {
				return nil
			}

			summary.Candidates++
			if catalog.AddCandidate(path) {
				summary.Added++
			} else {
				summary.Rejected++
			}
			return nil
		})
		if err != nil {
			summary.FinishedAt = time.Now()
			return summary, err
		}
	}

	summary.FinishedAt = time.Now()
	logger.Info("scan finished",
		logging.String("scan_id", summary.ScanID),
		logging.String("kind", kind),
		logging.Int("candidates", summary.Candidates),
		logging.Int("added", summary.Added),
		logging.Int("rejected", summary.Rejected),
	)
	return summary, nil
}
