package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteConnection opens the single-file inventory database. Foreign
// keys are off by default in sqlite and must be enabled per connection.
func NewSQLiteConnection(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping the database: %w", err)
	}

	// One writer at a time. The application serializes writes itself, this
	// just keeps the driver from spawning competing connections.
	db.SetMaxOpenConns(1)

	return db, nil
}
