package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Inspector is an independent, read-only view of a document database, the
// way an external tool would open it. It uses its own driver and connection
// and is never part of the store's write path.
type Inspector struct {
	db *sql.DB
}

// OpenReadOnly opens the database at path in read-only mode.
func OpenReadOnly(path string) (*Inspector, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Inspector{db: conn}, nil
}

// Close closes the read-only connection.
func (i *Inspector) Close() error {
	return i.db.Close()
}

// Row returns the raw singleton row, or nil if none is stored.
func (i *Inspector) Row() (*RawRow, error) {
	var r RawRow
	err := i.db.QueryRow(`SELECT id, raw_input, segments FROM texts WHERE id = ?`, singletonID).
		Scan(&r.ID, &r.RawInput, &r.Segments)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan text row: %w", err)
	}
	return &r, nil
}

// JournalMode reports the database journal mode, "wal" for a store file.
func (i *Inspector) JournalMode() (string, error) {
	var mode string
	if err := i.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		return "", fmt.Errorf("query journal mode: %w", err)
	}
	return mode, nil
}
