// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/quill-tui/internal/render"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrDatabaseError = errors.New("history database error")
	ErrClosed        = errors.New("history store closed")
)

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is one recorded export.
type Entry struct {
	ID          int64
	Path        string
	Format      string
	Size        int64
	Instruction string
	CreatedAt   time.Time
}

// =============================================================================
// STORE
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS exports (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	path        TEXT NOT NULL,
	format      TEXT NOT NULL,
	size        INTEGER NOT NULL,
	instruction TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_exports_created ON exports(created_at DESC);
`

// Store persists export records. Safe for concurrent use: the TUI
// records from command goroutines while shutdown closes the store on the
// main one, so the closed flag is atomic and sql.DB handles the rest.
type Store struct {
	db     *sql.DB
	closed atomic.Bool
}

// Open creates or opens the export history database at path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create directory: %v", ErrDatabaseError, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrDatabaseError, err)
	}

	// Single local writer; WAL keeps reads cheap while an export records.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrDatabaseError, pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: schema: %v", ErrDatabaseError, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle. An in-flight operation that
// already passed the closed check finishes against sql.DB's own
// close handling and reports its error normally.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// Record implements the pipeline Recorder contract.
func (s *Store) Record(artifact *render.ArtifactDescriptor, instruction string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if artifact == nil {
		return fmt.Errorf("%w: nil artifact", ErrDatabaseError)
	}
	_, err := s.db.Exec(
		"INSERT INTO exports (path, format, size, instruction, created_at) VALUES (?, ?, ?, ?, ?)",
		artifact.Path, string(artifact.Format), artifact.Size, instruction, artifact.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: insert: %v", ErrDatabaseError, err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. limit <= 0 means
// a sensible default.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		"SELECT id, path, format, size, instruction, created_at FROM exports ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Path, &e.Format, &e.Size, &e.Instruction, &created); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrDatabaseError, err)
		}
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// Prune deletes entries older than the cutoff and returns how many went.
func (s *Store) Prune(olderThan time.Time) (int64, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	res, err := s.db.Exec("DELETE FROM exports WHERE created_at < ?", olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("%w: prune: %v", ErrDatabaseError, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Count returns the number of recorded exports.
func (s *Store) Count() (int, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrDatabaseError, err)
	}
	return n, nil
}
