package repository

import (
	"context"

	"rideledger/internal/domain"
)

// RideRepository defines the persistence operations for the ride ledger.
// Rides are append-only: records are created once and mutated only through
// Update; they are never deleted.
type RideRepository interface {
	// Create persists a new ride, allocating the next monotonically
	// increasing id and storing it on the ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by id.
	GetByID(ctx context.Context, id int64) (*domain.Ride, error)

	// GetByParticipant retrieves all rides where the address is rider or
	// driver, in creation order.
	GetByParticipant(ctx context.Context, address string) ([]*domain.Ride, error)

	// GetBusyDriverAddresses retrieves the distinct addresses of drivers
	// currently assigned to an InProgress ride.
	GetBusyDriverAddresses(ctx context.Context) ([]string, error)

	// Update updates an existing ride.
	Update(ctx context.Context, ride *domain.Ride) error
}
