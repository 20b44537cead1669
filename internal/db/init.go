package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    images TEXT NOT NULL DEFAULT '[]',
    colors TEXT NOT NULL DEFAULT '[]',
    style TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0,
    featured TEXT NOT NULL DEFAULT 'false',
    seq BIGSERIAL
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL
);
`

// InitPostgres opens the database, verifies connectivity, and ensures the
// catalog schema exists. The seq column records creation order and backs
// the tie-break of the views-descending sort.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// SeedAdmin inserts the admin account if no user with that username
// exists yet. Re-running against a seeded database is a no-op.
func SeedAdmin(ctx context.Context, db *sql.DB, username, password string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (id, username, password) VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, uuid.NewString(), username, password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
