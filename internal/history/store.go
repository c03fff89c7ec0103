// Package history records finished conversions in a local SQLite database so
// the CLI and GUI can show what was converted, when, and whether it worked.
package history

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fileconv/file-converter/internal/model"
	"github.com/fileconv/file-converter/internal/platform"
)

// DBFileName is the database file name inside the app data directory.
const DBFileName = "history.db"

// DefaultRecentLimit bounds how many entries a listing returns when the
// caller does not specify a limit.
const DefaultRecentLimit = 20

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	input_path   TEXT NOT NULL,
	output_path  TEXT NOT NULL,
	target       TEXT NOT NULL,
	success      INTEGER NOT NULL,
	error        TEXT NOT NULL DEFAULT '',
	converted_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_converted_at ON conversions(converted_at DESC);
`

// Entry is one recorded conversion.
type Entry struct {
	ID          int64
	InputPath   string
	OutputPath  string
	Target      string
	Success     bool
	Error       string
	ConvertedAt time.Time
}

// Store persists conversion history in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if needed) the history database in the app data
// directory.
func Open() (*Store, error) {
	dir, err := platform.AppDataDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(filepath.Join(dir, DBFileName))
}

// OpenAt opens a history database at an explicit path.
func OpenAt(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Single writer; avoids SQLITE_BUSY under concurrent recording.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores one conversion result.
func (s *Store) Record(result model.ConversionResult, target string) error {
	_, err := s.db.Exec(
		`INSERT INTO conversions (input_path, output_path, target, success, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.InputPath, result.OutputPath, target,
		boolToInt(result.Success), result.Error, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first. A non-positive limit
// uses DefaultRecentLimit.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.db.Query(
		`SELECT id, input_path, output_path, target, success, error, converted_at
		 FROM conversions ORDER BY converted_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var success int
		var convertedAt int64
		if err := rows.Scan(&e.ID, &e.InputPath, &e.OutputPath, &e.Target, &success, &e.Error, &convertedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Success = success != 0
		e.ConvertedAt = time.Unix(convertedAt, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
