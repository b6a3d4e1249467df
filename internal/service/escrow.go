package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"rideledger/internal/observability"
	"rideledger/internal/repository"
)

// Payout is the interface for the external value transfer performed on
// withdrawal. It runs strictly after the balance has been zeroed.
type Payout interface {
	Transfer(ctx context.Context, address string, amount int64) (reference string, err error)
}

// LogPayout is a Payout that records the transfer and always succeeds.
// It stands in for a real settlement rail.
type LogPayout struct{}

// NewLogPayout creates a new LogPayout.
func NewLogPayout() *LogPayout {
	return &LogPayout{}
}

// Transfer logs the payout and returns a fresh reference id.
func (p *LogPayout) Transfer(ctx context.Context, address string, amount int64) (string, error) {
	reference := uuid.New().String()
	log.Printf("payout %s: %d units to %s", reference, amount, address)
	return reference, nil
}

// EscrowService handles withdrawable balances. Credits happen only through
// ledger transitions; this service only reads and drains.
type EscrowService struct {
	balanceRepo repository.BalanceRepository
	payout      Payout
}

// NewEscrowService creates a new EscrowService.
func NewEscrowService(balanceRepo repository.BalanceRepository, payout Payout) *EscrowService {
	return &EscrowService{
		balanceRepo: balanceRepo,
		payout:      payout,
	}
}

// WithdrawResult contains the outcome of a withdrawal.
type WithdrawResult struct {
	Amount    int64
	Reference string
}

// Withdraw transfers the caller's entire balance out. The balance is
// zeroed before the external transfer and restored if the transfer fails,
// so a reentrant call can never observe a stale, still-nonzero balance.
func (s *EscrowService) Withdraw(ctx context.Context, caller string) (*WithdrawResult, error) {
	if caller == "" {
		return nil, ErrEmptyAddress
	}

	amount, err := s.balanceRepo.Drain(ctx, caller)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyBalance) {
			return nil, ErrNoWithdrawableBalance
		}
		return nil, err
	}

	reference, err := s.payout.Transfer(ctx, caller, amount)
	if err != nil {
		// Roll the drain back so the failed withdrawal leaves no trace.
		if restoreErr := s.balanceRepo.Credit(ctx, caller, amount); restoreErr != nil {
			return nil, fmt.Errorf("payout failed (%v) and balance restore failed: %w", err, restoreErr)
		}
		return nil, fmt.Errorf("payout failed: %w", err)
	}

	observability.WithdrawalsTotal.Inc()
	observability.WithdrawnUnitsTotal.Add(float64(amount))
	return &WithdrawResult{Amount: amount, Reference: reference}, nil
}

// GetBalance retrieves the current withdrawable balance for an address.
func (s *EscrowService) GetBalance(ctx context.Context, address string) (int64, error) {
	if address == "" {
		return 0, ErrEmptyAddress
	}
	return s.balanceRepo.Get(ctx, address)
}
