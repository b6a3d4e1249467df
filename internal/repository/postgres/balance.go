package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideledger/internal/repository"
)

// BalanceRepository is a PostgreSQL implementation of
// repository.BalanceRepository.
type BalanceRepository struct {
	q Querier
}

// NewBalanceRepository creates a new PostgreSQL balance repository.
func NewBalanceRepository(db *sql.DB) *BalanceRepository {
	return &BalanceRepository{q: db}
}

// NewBalanceRepositoryWithTx creates a balance repository using a transaction.
func NewBalanceRepositoryWithTx(tx *sql.Tx) *BalanceRepository {
	return &BalanceRepository{q: tx}
}

// Credit adds amount to the address's balance, creating the row on first
// credit.
func (r *BalanceRepository) Credit(ctx context.Context, address string, amount int64) error {
	query := `
		INSERT INTO balances (address, amount) VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET amount = balances.amount + EXCLUDED.amount
	`

	_, err := r.q.ExecContext(ctx, query, address, amount)
	return err
}

// Get retrieves the current balance.
func (r *BalanceRepository) Get(ctx context.Context, address string) (int64, error) {
	query := `SELECT amount FROM balances WHERE address = $1`

	var amount int64
	err := r.q.QueryRowContext(ctx, query, address).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return amount, err
}

// Drain atomically zeroes the balance and returns the amount that was held.
func (r *BalanceRepository) Drain(ctx context.Context, address string) (int64, error) {
	// Single statement so the read and the zeroing cannot interleave with
	// a concurrent credit.
	query := `
		WITH held AS (
			SELECT amount FROM balances WHERE address = $1 AND amount > 0 FOR UPDATE
		)
		UPDATE balances SET amount = 0
		FROM held WHERE balances.address = $1
		RETURNING held.amount
	`

	var amount int64
	err := r.q.QueryRowContext(ctx, query, address).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrEmptyBalance
	}
	if err != nil {
		return 0, err
	}
	return amount, nil
}
