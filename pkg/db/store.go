package db

import (
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/japaniel/rubylens/pkg/text"
)

// singletonID is the only row id the texts table accepts.
const singletonID = 1

// DBExecutor is an interface that allows helpers to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Store owns the single connection to the document database. It performs no
// locking of its own; callers serialize access (see pkg/app).
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path, switches it to WAL journaling
// and ensures the schema exists. Any failure, including a file that is not a
// SQLite database, is a StorageUnavailable error.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, storageErr(StorageUnavailable, "open", err)
	}
	// One connection: ":memory:" databases are per-connection and the store
	// models a single writer.
	conn.SetMaxOpenConns(1)

	var mode string
	if err := conn.QueryRow("PRAGMA journal_mode = WAL").Scan(&mode); err != nil {
		conn.Close()
		return nil, storageErr(StorageUnavailable, "open", fmt.Errorf("enable wal: %w", err))
	}
	if err := InitDB(conn); err != nil {
		conn.Close()
		return nil, storageErr(StorageUnavailable, "open", fmt.Errorf("init schema: %w", err))
	}
	return &Store{db: conn, path: path}, nil
}

// Path returns the database location the store was opened with.
func (s *Store) Path() string { return s.path }

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// Save makes t the sole stored document. Segments are encoded before any
// mutation; the delete of the previous row and the insert of the new one
// commit together or not at all.
func (s *Store) Save(t text.Text) error {
	if !utf8.ValidString(t.RawInput) {
		return storageErr(EncodingFailure, "save", errors.New("raw input is not valid UTF-8"))
	}
	segs, err := text.MarshalSegments(t.Segments)
	if err != nil {
		return storageErr(EncodingFailure, "save", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr(TransactionFailure, "save", fmt.Errorf("begin: %w", err))
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	if err := deleteText(tx); err != nil {
		return storageErr(TransactionFailure, "save", err)
	}
	if err := insertText(tx, t.RawInput, string(segs)); err != nil {
		return storageErr(TransactionFailure, "save", err)
	}
	if err := tx.Commit(); err != nil {
		return storageErr(TransactionFailure, "save", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Load returns the stored document, or nil when nothing has been saved yet.
// A segments column that does not decode is a DecodingFailure, never an
// absent document.
func (s *Store) Load() (*text.Text, error) {
	raw, segs, err := selectText(s.db)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(TransactionFailure, "load", err)
	}

	segments, err := text.UnmarshalSegments([]byte(segs))
	if err != nil {
		return nil, storageErr(DecodingFailure, "load", err)
	}
	return &text.Text{RawInput: raw, Segments: segments}, nil
}

func deleteText(db DBExecutor) error {
	if _, err := db.Exec(`DELETE FROM texts`); err != nil {
		return fmt.Errorf("delete text: %w", err)
	}
	return nil
}

// insertText stores segments as a string so the column keeps TEXT affinity
// for external tools.
func insertText(db DBExecutor, rawInput, segments string) error {
	_, err := db.Exec(`INSERT INTO texts (id, raw_input, segments) VALUES (?, ?, ?)`,
		singletonID, rawInput, segments)
	if err != nil {
		return fmt.Errorf("insert text: %w", err)
	}
	return nil
}

func selectText(db DBExecutor) (rawInput, segments string, err error) {
	err = db.QueryRow(`SELECT raw_input, segments FROM texts WHERE id = ?`, singletonID).
		Scan(&rawInput, &segments)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		err = fmt.Errorf("select text: %w", err)
	}
	return rawInput, segments, err
}
