package service

import (
	"context"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
)

// FeeService handles the owner-gated platform fee configuration.
type FeeService struct {
	configRepo repository.ConfigRepository
}

// NewFeeService creates a new FeeService.
func NewFeeService(configRepo repository.ConfigRepository) *FeeService {
	return &FeeService{configRepo: configRepo}
}

// SetPlatformFee updates the fee fraction. Only the owner fixed at
// initialization may call it.
func (s *FeeService) SetPlatformFee(ctx context.Context, caller string, bps int64) error {
	if caller == "" {
		return ErrEmptyAddress
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return err
	}
	if caller != cfg.OwnerAddress {
		return ErrNotOwner
	}
	if bps < 0 || bps > domain.MaxFeeBps {
		return ErrFeeOutOfRange
	}

	return s.configRepo.SetFeeBps(ctx, bps)
}

// GetPlatformFee returns the current fee fraction in basis points.
func (s *FeeService) GetPlatformFee(ctx context.Context) (int64, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return 0, err
	}
	return cfg.FeeBps, nil
}
