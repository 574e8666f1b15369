package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Config holds database configuration
type Config struct {
	Path string
}

// DB wraps the SQL database connection.
// Constructed once at process start and passed by handle; there is no
// package-global connection.
type DB struct {
	conn *sql.DB
}

// schema is applied on every open; CREATE TABLE IF NOT EXISTS makes it a
// no-op after first startup.
const schema = `
CREATE TABLE IF NOT EXISTS todos (
	id          TEXT    PRIMARY KEY,
	title       TEXT    NOT NULL,
	completed   INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT    NOT NULL
);
`

// Open opens the database, applies pragmas and bootstraps the schema
func Open(cfg Config) (*DB, error) {
	// Ensure the data directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL mode for better concurrent read performance
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", cfg.Path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
