// Package store provides Postgres persistence for the gateway's registries
// and saved conversations.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and verifies the connection.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS api_vendor (
	id   SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS model (
	id                  SERIAL PRIMARY KEY,
	api_name            VARCHAR(255) NOT NULL,
	name                VARCHAR(255) NOT NULL,
	is_vision           BOOLEAN NOT NULL DEFAULT FALSE,
	is_image_generation BOOLEAN NOT NULL DEFAULT FALSE,
	is_thinking         BOOLEAN NOT NULL DEFAULT FALSE,
	no_system_role      BOOLEAN NOT NULL DEFAULT FALSE,
	api_vendor_id       INTEGER NOT NULL REFERENCES api_vendor(id),
	UNIQUE (api_vendor_id, api_name)
);

CREATE TABLE IF NOT EXISTS persona (
	id       SERIAL PRIMARY KEY,
	name     VARCHAR(255) NOT NULL,
	prompt   TEXT NOT NULL,
	owner_id INTEGER
);

CREATE TABLE IF NOT EXISTS render_type (
	id   SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS output_format (
	id             SERIAL PRIMARY KEY,
	name           VARCHAR(255) NOT NULL,
	prompt         TEXT NOT NULL,
	owner_id       INTEGER,
	render_type_id INTEGER REFERENCES render_type(id)
);

CREATE TABLE IF NOT EXISTS conversation_history (
	id           SERIAL PRIMARY KEY,
	user_id      INTEGER NOT NULL,
	title        TEXT,
	conversation TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the gateway tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
