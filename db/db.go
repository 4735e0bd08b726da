package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
	_ "modernc.org/sqlite"
)

// Open dispatches on the cache driver name.
func Open(driver, dsn string, timeout time.Duration) (*sql.DB, error) {
	switch driver {
	case "postgres":
		return Connect(dsn, timeout)
	case "sqlite":
		return OpenSQLite(dsn, timeout)
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", driver)
	}
}

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, ping(db, timeout)
}

// OpenSQLite opens a file-backed SQLite database. A single connection keeps
// writers serialized.
func OpenSQLite(path string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := ping(db, timeout); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure sqlite: %w", err)
	}
	return db, nil
}

func ping(db *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			fmt.Printf("failed to close database handle after ping error: %v\n", closeErr)
		}
		return fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}
	return nil
}
