package storage

import (
	"database/sql"
	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// DB wraps the SQLite connection holding the tagger lexicon. The
// lexicon is written offline by the training pipeline; at inference
// time it is only read.
type DB struct {
	conn *sql.DB
}

// Open opens or creates a lexicon database at the given path
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Clear removes all phrases from the lexicon
func (db *DB) Clear() error {
	_, err := db.conn.Exec("DELETE FROM phrases;")
	return err
}
