package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteDB is the embedded store used for local runs and tests
type SQLiteDB struct {
	DB *sql.DB
}

// NewSQLiteDB opens (or creates) the SQLite database at path. ":memory:" gives
// a private in-memory database.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	var dsn string
	if isMemoryPath(path) {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	} else {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps an in-memory database alive and shared,
	// and SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)
	if lifetime := connMaxLifetime(path); lifetime > 0 {
		db.SetConnMaxLifetime(lifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteDB{DB: db}, nil
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}

// connMaxLifetime is zero for in-memory databases: recycling the only
// connection would drop every table with it.
func connMaxLifetime(path string) time.Duration {
	if isMemoryPath(path) {
		return 0
	}
	return time.Hour
}

// Close closes the database handle
func (s *SQLiteDB) Close() error {
	return s.DB.Close()
}
