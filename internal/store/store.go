// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the problem-statement corpus in SQLite so the
// server can load it without re-parsing the source CSV.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/ps-search/pkg/types"
)

// Store manages the corpus SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at cfg.DBPath, creating its parent
// directory and the schema if they do not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: cfg.DBPath}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			author TEXT NOT NULL,
			title TEXT NOT NULL,
			problem_statement TEXT NOT NULL,
			contributor TEXT NOT NULL DEFAULT '',
			imported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_title ON records(title)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Inserted   int
	Duplicates int
}

// Total returns the number of records processed.
func (s ImportSummary) Total() int {
	return s.Inserted + s.Duplicates
}

// Import inserts records in a single transaction. A record whose joined key
// is already stored is counted as a duplicate and left unchanged.
func (s *Store) Import(ctx context.Context, records []types.Record, w io.Writer) (ImportSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO records (key, author, title, problem_statement, contributor, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	var summary ImportSummary
	for _, rec := range records {
		res, err := stmt.ExecContext(ctx,
			rec.Key(), rec.Author, rec.Title, rec.ProblemStatement, rec.Contributor, now)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("inserting %q: %w", rec.Title, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return ImportSummary{}, fmt.Errorf("checking insert of %q: %w", rec.Title, err)
		}
		if n == 0 {
			summary.Duplicates++
			continue
		}
		summary.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("committing import: %w", err)
	}

	fmt.Fprintf(w, "inserted: %d, duplicates: %d\n", summary.Inserted, summary.Duplicates)
	return summary, nil
}
