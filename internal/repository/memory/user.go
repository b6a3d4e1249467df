package memory

import (
	"context"
	"sync"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
)

// UserRepository is an in-memory implementation of repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string // addresses in registration order
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Address]; ok {
		return repository.ErrAlreadyExists
	}
	stored := *user
	r.users[user.Address] = &stored
	r.order = append(r.order, user.Address)
	return nil
}

func (r *UserRepository) GetByAddress(ctx context.Context, address string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[address]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *user
	return &copy, nil
}

func (r *UserRepository) GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.User
	for _, addr := range r.order {
		if u := r.users[addr]; u.Role == role {
			copy := *u
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (r *UserRepository) UpdateRating(ctx context.Context, address string, rating float64, count int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[address]
	if !ok {
		return repository.ErrNotFound
	}
	user.Rating = rating
	user.RatingCount = count
	return nil
}
