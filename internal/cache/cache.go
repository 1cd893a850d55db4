// Package cache provides SQLite-backed storage for graph snapshots. A
// snapshot of the populated graph is stored per scanned root in
// .scout/cache.db so repeated queries skip the scan and extraction pass.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound indicates no snapshot is stored for the root.
	ErrNotFound = errors.New("snapshot not found")

	// ErrExpired indicates the stored snapshot is older than the TTL.
	ErrExpired = errors.New("snapshot expired")
)

// Store manages the .scout/cache.db SQLite database holding exported
// graph snapshots.
type Store struct {
	db     *sql.DB
	dbPath string
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    root TEXT PRIMARY KEY,
    blob BLOB NOT NULL,
    node_count INTEGER NOT NULL DEFAULT 0,
    edge_count INTEGER NOT NULL DEFAULT 0,
    saved_at TEXT NOT NULL
);
`

// Open opens or creates the snapshot database at the specified .scout
// directory. It initializes the schema if the database is new.
func Open(scoutDir string) (*Store, error) {
	dbPath := filepath.Join(scoutDir, "cache.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Save stores a snapshot blob for the given root, replacing any previous
// one.
func (s *Store) Save(root string, blob []byte, nodeCount, edgeCount int) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (root, blob, node_count, edge_count, saved_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(root) DO UPDATE SET
		   blob = excluded.blob,
		   node_count = excluded.node_count,
		   edge_count = excluded.edge_count,
		   saved_at = excluded.saved_at`,
		root, blob, nodeCount, edgeCount, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot blob stored for root. A ttl of zero disables
// expiry; otherwise a snapshot older than ttl yields ErrExpired.
func (s *Store) Load(root string, ttl time.Duration) ([]byte, error) {
	var blob []byte
	var savedAt string
	err := s.db.QueryRow(
		"SELECT blob, saved_at FROM snapshots WHERE root = ?", root,
	).Scan(&blob, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if ttl > 0 {
		saved, parseErr := time.Parse(time.RFC3339, savedAt)
		if parseErr != nil || time.Since(saved) > ttl {
			return nil, ErrExpired
		}
	}
	return blob, nil
}

// Delete removes the snapshot stored for root, if any.
func (s *Store) Delete(root string) error {
	if _, err := s.db.Exec("DELETE FROM snapshots WHERE root = ?", root); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Clear removes all stored snapshots.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}

// Entry describes one stored snapshot.
type Entry struct {
	Root      string
	NodeCount int
	EdgeCount int
	SavedAt   time.Time
}

// List returns metadata for all stored snapshots, newest first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(
		"SELECT root, node_count, edge_count, saved_at FROM snapshots ORDER BY saved_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var savedAt string
		if err := rows.Scan(&e.Root, &e.NodeCount, &e.EdgeCount, &savedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		e.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
