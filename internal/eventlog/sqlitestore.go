package eventlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/appicon/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path, creates
// tables and indexes, and performs one-time migration from appicon.log
// if it exists in the same directory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}

	// Timestamps are stored as UTC RFC3339 so string comparison orders them.
	ddl := `
CREATE TABLE IF NOT EXISTS events (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT    NOT NULL,
    file      TEXT    NOT NULL,
    action    TEXT    NOT NULL,
    path      TEXT    NOT NULL DEFAULT '',
    size      INTEGER NOT NULL DEFAULT 0,
    bytes     INTEGER NOT NULL DEFAULT 0,
    digest    TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_events_path      ON events(path);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	// One-time migration from flat file.
	logPath := filepath.Join(filepath.Dir(path), paths.LogFileName)
	if _, err := os.Stat(logPath); err == nil {
		if err := s.migrateFromFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "eventlog: migration: %v\n", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Log(r Record) error {
	return s.insert(s.db, time.Now(), r)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) insert(db execer, ts time.Time, r Record) error {
	_, err := db.Exec(
		`INSERT INTO events (timestamp, file, action, path, size, bytes, digest)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.UTC().Format(time.RFC3339), string(r.File), string(r.Action), r.Path, r.Size, r.Bytes, r.Digest,
	)
	return err
}

func (s *SQLiteStore) Entries(days int) ([]Entry, error) {
	query := `SELECT timestamp, file, action, path, size, bytes, digest FROM events`
	var args []any
	if days > 0 {
		query += ` WHERE timestamp >= ?`
		args = append(args, DayCutoff(days).UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var tsStr, file, action string
		var e Entry
		if err := rows.Scan(&tsStr, &file, &action, &e.Path, &e.Size, &e.Bytes, &e.Digest); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		e.Time = ts.Local()
		e.File = File(file)
		e.Action = Action(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReadContent renders all events in the flat-file line format.
func (s *SQLiteStore) ReadContent() (string, error) {
	entries, err := s.Entries(0)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(FormatLine(e.Time, e.Record))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	cutoff := DayCutoff(days).UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM events WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM events`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// migrateFromFile imports an existing appicon.log into the database. On
// success, renames the log to appicon.log.migrated.
func (s *SQLiteStore) migrateFromFile(logPath string) error {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range ParseEntries(string(data)) {
		if err := s.insert(tx, e.Time, e.Record); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return os.Rename(logPath, logPath+".migrated")
}
