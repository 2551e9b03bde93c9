package catalogdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Scan summarizes one directory scan for a set kind.
type Scan struct {
	ID         string
	Kind       string
	StartedAt  time.Time
	FinishedAt time.Time
	Candidates int
	Added      int
	Rejected   int
}

// SetRecord is the persisted shape of one discovered set.
type SetRecord struct {
	Name        string
	ShortName   uint32
	Version     int
	ValidFiles  int
	FoundFiles  int
	TotalFiles  int
	PrimaryFile string
}

// Open initializes or connects to the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// RecordScan stores one completed scan and replaces the last-known sets
// for its kind.
func (s *Store) RecordScan(ctx context.Context, scan Scan, sets []SetRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scan tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scans (id, kind, started_at, finished_at, candidates, added, rejected)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		scan.ID,
		scan.Kind,
		scan.StartedAt.UTC().Format(time.RFC3339Nano),
		scan.FinishedAt.UTC().Format(time.RFC3339Nano),
		scan.Candidates,
		scan.Added,
		scan.Rejected,
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sets WHERE kind = ?", scan.Kind); err != nil {
		return fmt.Errorf("clear sets: %w", err)
	}
	for _, set := range sets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sets (kind, name, shortname, version, valid_files, found_files, total_files, primary_file)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			scan.Kind,
			set.Name,
			int64(set.ShortName),
			set.Version,
			set.ValidFiles,
			set.FoundFiles,
			set.TotalFiles,
			set.PrimaryFile,
		)
		if err != nil {
			return fmt.Errorf("insert set %s: %w", set.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan: %w", err)
	}
	return nil
}

// LatestSets returns the last-known sets for a kind in name order.
func (s *Store) LatestSets(ctx context.Context, kind string) ([]SetRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, shortname, version, valid_files, found_files, total_files, primary_file
         FROM sets WHERE kind = ? ORDER BY name`, kind)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer rows.Close()

	var sets []SetRecord
	for rows.Next() {
		var set SetRecord
		var short int64
		if err := rows.Scan(&set.Name, &short, &set.Version, &set.ValidFiles, &set.FoundFiles, &set.TotalFiles, &set.PrimaryFile); err != nil {
			return nil, fmt.Errorf("scan set row: %w", err)
		}
		set.ShortName = uint32(short)
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// RecentScans returns up to limit scans, newest first.
func (s *Store) RecentScans(ctx context.Context, limit int) ([]Scan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, started_at, finished_at, candidates, added, rejected
         FROM scans ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var scan Scan
		var started, finished string
		if err := rows.Scan(&scan.ID, &scan.Kind, &started, &finished, &scan.Candidates, &scan.Added, &scan.Rejected); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if scan.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if scan.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}

// Selection returns the persisted selection for a kind, or empty when
// none is stored.
func (s *Store) Selection(ctx context.Context, kind string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT set_name FROM selection WHERE kind = ?", kind).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query selection: %w", err)
	}
	return name, nil
}

// SetSelection stores the selection for a kind; an empty name clears it.
func (s *Store) SetSelection(ctx context.Context, kind, name string) error {
	if name == "" {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM selection WHERE kind = ?", kind); err != nil {
			return fmt.Errorf("clear selection: %w", err)
		}
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO selection (kind, set_name, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(kind) DO UPDATE SET set_name = excluded.set_name, updated_at = excluded.updated_at`,
		kind, name, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store selection: %w", err)
	}
	return nil
}
