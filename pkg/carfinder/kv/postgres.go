package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/retry"
)

const upsertStmt = `
	INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
`

// Postgres persists values in a single key/value table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection to PostgreSQL, waits for it to answer
// under policy, runs the schema migration, and returns a ready-to-use store.
func NewPostgres(ctx context.Context, dsn string, policy retry.Policy) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := policy.Do(ctx, "postgres ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT        PRIMARY KEY,
			value      TEXT        NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

func (p *Postgres) Load(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = $1;", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres: load %q: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Save(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx, upsertStmt, key, value)
	if err != nil {
		return fmt.Errorf("postgres: save %q: %w", key, err)
	}
	return nil
}

// Update runs fn inside a transaction holding an advisory lock on key, so
// concurrent updaters of the same key are serialised even before its row
// exists.
func (p *Postgres) Update(ctx context.Context, key string, fn UpdateFunc) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1));", key); err != nil {
		return fmt.Errorf("postgres: lock %q: %w", key, err)
	}

	var current string
	found := true
	err = tx.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = $1 FOR UPDATE;", key).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		found, err = false, nil
	}
	if err != nil {
		return fmt.Errorf("postgres: load %q: %w", key, err)
	}

	next, err := fn(current, found)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, upsertStmt, key, next); err != nil {
		return fmt.Errorf("postgres: save %q: %w", key, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
