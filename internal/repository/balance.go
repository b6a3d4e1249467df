package repository

import "context"

// BalanceRepository defines the persistence operations for withdrawable
// balances. Balances are created implicitly on first credit and persist at
// zero after a drain.
type BalanceRepository interface {
	// Credit adds amount to the address's balance.
	Credit(ctx context.Context, address string, amount int64) error

	// Get retrieves the current balance. Addresses never credited hold
	// zero.
	Get(ctx context.Context, address string) (int64, error)

	// Drain atomically zeroes the balance and returns the amount that was
	// held. Returns ErrEmptyBalance when nothing is held.
	Drain(ctx context.Context, address string) (int64, error)
}
