package postgres

import (
	"context"
	"database/sql"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// EnsureSchema creates the ledger tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS users (
			address      TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			contact      TEXT NOT NULL,
			role         TEXT NOT NULL,
			rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
			rating_count BIGINT NOT NULL DEFAULT 0,
			created_at   TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS rides (
			id             BIGSERIAL PRIMARY KEY,
			rider_address  TEXT NOT NULL,
			driver_address TEXT,
			pickup         TEXT NOT NULL,
			dropoff        TEXT NOT NULL,
			fare           BIGINT NOT NULL,
			status         TEXT NOT NULL,
			rated          BOOLEAN NOT NULL DEFAULT FALSE,
			created_at     TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS balances (
			address TEXT PRIMARY KEY,
			amount  BIGINT NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS platform_config (
			id            BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
			owner_address TEXT NOT NULL,
			fee_bps       BIGINT NOT NULL
		);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}
