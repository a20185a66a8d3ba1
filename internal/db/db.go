// Package db provides PostgreSQL access for the quick test completion counter.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

const completionsSchema = `CREATE TABLE IF NOT EXISTS quick_test_completions (
	id BIGSERIAL PRIMARY KEY,
	completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the completions table when it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, completionsSchema); err != nil {
		return fmt.Errorf("failed to create quick_test_completions: %w", err)
	}
	return nil
}

// InsertCompletion records one finished quick test. No answers are stored.
func (db *DB) InsertCompletion(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, `INSERT INTO quick_test_completions DEFAULT VALUES`); err != nil {
		return fmt.Errorf("failed to insert completion: %w", err)
	}
	return nil
}

// CountCompletions returns the number of recorded completions
func (db *DB) CountCompletions(ctx context.Context) (int64, error) {
	var count int64
	if err := db.pool.QueryRow(ctx, `SELECT count(*) FROM quick_test_completions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}
