package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectToSQLite initializes and returns a SQLite connection
func ConnectToSQLite(dbPath string) (*sql.DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	log.Println("Connected to SQLite database")
	return db, nil
}

// InitializeSchema creates all the necessary tables if they don't exist
func InitializeSchema(db *sql.DB) error {
	// The unique constraint on phone_number is what collapses concurrent
	// first-time lookups for the same number into a single stored record.
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS phone_locations (
		id TEXT PRIMARY KEY,
		phone_number TEXT NOT NULL UNIQUE,
		city TEXT,
		region TEXT,
		country TEXT,
		carrier TEXT,
		timezone TEXT,
		latitude REAL,
		longitude REAL,
		formatted_address TEXT,
		lookup_time TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create phone_locations table: %w", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}
