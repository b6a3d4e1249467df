package repository

import (
	"context"

	"rideledger/internal/domain"
)

// ConfigRepository defines the persistence operations for the platform
// configuration. The record is a singleton written once at initialization;
// only the fee fraction is mutated afterwards.
type ConfigRepository interface {
	// Init stores the configuration if none exists yet. An existing
	// record wins: the owner is fixed at first initialization.
	Init(ctx context.Context, cfg *domain.PlatformConfig) error

	// Get retrieves the configuration.
	Get(ctx context.Context) (*domain.PlatformConfig, error)

	// SetFeeBps updates the stored fee fraction.
	SetFeeBps(ctx context.Context, bps int64) error
}
