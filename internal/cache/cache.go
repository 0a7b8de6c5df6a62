// Package cache persists fetched API records in a local SQLite database
// so repeated CLI lookups can be inspected offline. The client library
// itself never touches it.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one fetched API payload.
type Record struct {
	URI       string    `json:"uri"`
	Kind      string    `json:"kind"` // author, affiliation, document
	ID        string    `json:"id"`
	Payload   string    `json:"payload,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// DB wraps the records database.
type DB struct {
	db *sql.DB
}

const recordsDDL = `CREATE TABLE IF NOT EXISTS records (
  uri TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  id TEXT NOT NULL,
  payload TEXT NOT NULL,
  fetched_at TEXT NOT NULL
)`

// DefaultPath returns the records database path. Respects
// XDG_DATA_HOME, defaults to ~/.local/share/elsago/records.db.
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "elsago", "records.db"), nil
}

// Open opens the records database at path, creating it and its
// directory if needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(recordsDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating records table: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Put inserts or replaces the record for rec.URI.
func (d *DB) Put(rec Record) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO records (uri, kind, id, payload, fetched_at) VALUES (?, ?, ?, ?, ?)`,
		rec.URI, rec.Kind, rec.ID, rec.Payload, rec.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing record: %w", err)
	}
	return nil
}

// Get returns the record for uri, or nil if absent.
func (d *DB) Get(uri string) (*Record, error) {
	row := d.db.QueryRow(
		`SELECT uri, kind, id, payload, fetched_at FROM records WHERE uri = ?`, uri)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}
	return rec, nil
}

// List returns stored records, newest first. An empty kind returns
// everything.
func (d *DB) List(kind string) ([]Record, error) {
	query := `SELECT uri, kind, id, payload, fetched_at FROM records ORDER BY fetched_at DESC, uri`
	args := []any{}
	if kind != "" {
		query = `SELECT uri, kind, id, payload, fetched_at FROM records WHERE kind = ? ORDER BY fetched_at DESC, uri`
		args = append(args, kind)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return recs, nil
}

// Clear removes all records and returns the number deleted.
func (d *DB) Clear() (int64, error) {
	res, err := d.db.Exec(`DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("clearing records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing records: %w", err)
	}
	return n, nil
}

func scanRecord(scan func(...any) error) (*Record, error) {
	var rec Record
	var fetchedAt string
	if err := scan(&rec.URI, &rec.Kind, &rec.ID, &rec.Payload, &fetchedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing fetched_at: %w", err)
	}
	rec.FetchedAt = t
	return &rec, nil
}
