// Package postgres stores each collection as one JSONB row in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    name       TEXT PRIMARY KEY,
    body       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Store is a DocumentStore backed by the documents table.
type Store struct{ db *sql.DB }

// NewWithDB constructs a Postgres document store backed directly by database/sql.
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

// Bootstrap creates the documents table if it does not exist.
func (s *Store) Bootstrap(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return errors.Wrap(err, "create documents table")
}

func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = $1`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return body, nil
}

func (s *Store) Write(ctx context.Context, name string, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO documents (name, body, updated_at) VALUES ($1, $2::jsonb, now())
        ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
    `, name, string(doc))
	return errors.WithStack(err)
}

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *Store) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error { return s.db.Close() }
