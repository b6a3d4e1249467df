package memory

import (
	"context"
	"sync"

	"rideledger/internal/repository"
)

// BalanceRepository is an in-memory implementation of
// repository.BalanceRepository.
type BalanceRepository struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewBalanceRepository creates an empty in-memory balance repository.
func NewBalanceRepository() *BalanceRepository {
	return &BalanceRepository{balances: make(map[string]int64)}
}

func (r *BalanceRepository) Credit(ctx context.Context, address string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[address] += amount
	return nil
}

func (r *BalanceRepository) Get(ctx context.Context, address string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[address], nil
}

func (r *BalanceRepository) Drain(ctx context.Context, address string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	amount := r.balances[address]
	if amount <= 0 {
		return 0, repository.ErrEmptyBalance
	}
	r.balances[address] = 0
	return amount, nil
}
