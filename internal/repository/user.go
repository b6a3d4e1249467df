package repository

import (
	"context"

	"rideledger/internal/domain"
)

// UserRepository defines the persistence operations for registered users.
type UserRepository interface {
	// Create persists a new user. Returns ErrAlreadyExists if the address
	// is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByAddress retrieves a user by address.
	GetByAddress(ctx context.Context, address string) (*domain.User, error)

	// GetByRole retrieves all users with the given role, in registration
	// order.
	GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// UpdateRating sets the rating fields of an existing user.
	UpdateRating(ctx context.Context, address string, rating float64, count int64) error
}
