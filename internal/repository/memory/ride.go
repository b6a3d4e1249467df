package memory

import (
	"context"
	"sync"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
)

// RideRepository is an in-memory implementation of repository.RideRepository.
// Ids are allocated from a counter starting at 1 and are never reused.
type RideRepository struct {
	mu     sync.RWMutex
	rides  map[int64]*domain.Ride
	order  []int64 // ids in creation order
	nextID int64
}

// NewRideRepository creates an empty in-memory ride repository.
func NewRideRepository() *RideRepository {
	return &RideRepository{rides: make(map[int64]*domain.Ride), nextID: 1}
}

func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ride.ID = r.nextID
	r.nextID++
	stored := *ride
	r.rides[ride.ID] = &stored
	r.order = append(r.order, ride.ID)
	return nil
}

func (r *RideRepository) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ride, ok := r.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (r *RideRepository) GetByParticipant(ctx context.Context, address string) ([]*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Ride
	for _, id := range r.order {
		if ride := r.rides[id]; ride.Participant(address) {
			copy := *ride
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (r *RideRepository) GetBusyDriverAddresses(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var busy []string
	for _, id := range r.order {
		ride := r.rides[id]
		if ride.Status == domain.RideStatusInProgress && ride.DriverAddress != "" && !seen[ride.DriverAddress] {
			seen[ride.DriverAddress] = true
			busy = append(busy, ride.DriverAddress)
		}
	}
	return busy, nil
}

func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rides[ride.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *ride
	r.rides[ride.ID] = &stored
	return nil
}
