// Package db is the rubylens storage engine: a single SQLite file holding at
// most one document in the singleton row of the texts table.
package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// InitDB applies the embedded schema. Every statement is create-if-absent, so
// running it against an existing document database changes nothing.
func InitDB(db *sql.DB) error {
	for i, stmt := range strings.Split(schemaSQL, ";") {
		if stmt = strings.TrimSpace(stmt); stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
