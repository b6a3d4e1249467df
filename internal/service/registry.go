package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
	"rideledger/internal/repository/postgres"
)

// RegistryService handles participant registration and reputation.
type RegistryService struct {
	// db is optional; when set, rating updates run inside a database
	// transaction. With the in-memory store it stays nil and mutations
	// after the guards cannot fail.
	db       *sql.DB
	userRepo repository.UserRepository
	rideRepo repository.RideRepository
	cache    AvailabilityCache // optional

	mu sync.Mutex
}

// NewRegistryService creates a new RegistryService. db and cache may be
// nil.
func NewRegistryService(db *sql.DB, userRepo repository.UserRepository, rideRepo repository.RideRepository, cache AvailabilityCache) *RegistryService {
	return &RegistryService{
		db:       db,
		userRepo: userRepo,
		rideRepo: rideRepo,
		cache:    cache,
	}
}

// RegisterRequest contains the parameters for registering a participant.
type RegisterRequest struct {
	Address string
	Name    string
	Contact string
	Role    domain.Role
}

// Register creates a new participant with zeroed rating counters.
func (s *RegistryService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Address == "" {
		return nil, ErrEmptyAddress
	}
	if req.Name == "" || req.Contact == "" {
		return nil, ErrMissingProfile
	}
	if !domain.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	user := &domain.User{
		Address:    req.Address,
		Name:       req.Name,
		Contact:    req.Contact,
		Role:       req.Role,
		Registered: true,
		CreatedAt:  time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	// A fresh driver has no active ride, so the cached availability set
	// must pick it up immediately.
	if s.cache != nil && user.Role == domain.RoleDriver {
		_ = s.cache.AddAvailableDriver(ctx, user.Address)
	}

	return user, nil
}

// GetUser retrieves a registered participant.
func (s *RegistryService) GetUser(ctx context.Context, address string) (*domain.User, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}
	return s.userRepo.GetByAddress(ctx, address)
}

// RateRequest contains the parameters for rating a counterparty. The ride
// id is explicit so a pair with several completed rides cannot be rated
// ambiguously.
type RateRequest struct {
	Rater  string
	Ratee  string
	RideID int64
	Score  int64
}

// Rate records a score for the ratee as a running mean and marks the ride
// rated. All guards run before any mutation.
func (s *RegistryService) Rate(ctx context.Context, req RateRequest) (*domain.User, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, ErrInvalidScore
	}
	if req.Rater == "" || req.Ratee == "" {
		return nil, ErrEmptyAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userRepo.GetByAddress(ctx, req.Rater); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	ratee, err := s.userRepo.GetByAddress(ctx, req.Ratee)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if !ride.Participant(req.Rater) || ride.Counterparty(req.Rater) != req.Ratee {
		return nil, ErrNotParticipant
	}
	if ride.Status != domain.RideStatusCompleted {
		return nil, ErrRideNotCompleted
	}
	if ride.Rated {
		return nil, ErrRideAlreadyRated
	}

	newRating := (ratee.Rating*float64(ratee.RatingCount) + float64(req.Score)) / float64(ratee.RatingCount+1)
	newCount := ratee.RatingCount + 1
	ride.Rated = true

	if err := s.applyRating(ctx, ratee.Address, newRating, newCount, ride); err != nil {
		return nil, err
	}

	ratee.Rating = newRating
	ratee.RatingCount = newCount
	return ratee, nil
}

// applyRating writes the new rating and the rated flag, transactionally
// when a database is present.
func (s *RegistryService) applyRating(ctx context.Context, address string, rating float64, count int64, ride *domain.Ride) (err error) {
	if s.db == nil {
		if err := s.userRepo.UpdateRating(ctx, address, rating, count); err != nil {
			return err
		}
		return s.rideRepo.Update(ctx, ride)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = postgres.NewUserRepositoryWithTx(tx).UpdateRating(ctx, address, rating, count); err != nil {
		return err
	}
	if err = postgres.NewRideRepositoryWithTx(tx).Update(ctx, ride); err != nil {
		return err
	}
	return tx.Commit()
}
