package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"rideledger/internal/domain"
	"rideledger/internal/observability"
	"rideledger/internal/repository"
	"rideledger/internal/repository/postgres"
)

// AvailabilityCache is the fast-path set of driver addresses currently free
// to accept a ride. It is advisory: the repositories stay authoritative.
type AvailabilityCache interface {
	GetAvailableDrivers(ctx context.Context) ([]string, error)
	SetAvailableDrivers(ctx context.Context, addresses []string) error
	AddAvailableDriver(ctx context.Context, address string) error
	RemoveAvailableDriver(ctx context.Context, address string) error
}

// LedgerService owns the ride state machine. Every lifecycle transition is
// applied atomically: guards run first, under a single lock imposing one
// global order, and only then does the store mutate.
type LedgerService struct {
	// db is optional; when set, multi-entity transitions (complete,
	// cancel) run inside a database transaction.
	db          *sql.DB
	userRepo    repository.UserRepository
	rideRepo    repository.RideRepository
	balanceRepo repository.BalanceRepository
	configRepo  repository.ConfigRepository
	cache       AvailabilityCache // optional

	mu sync.Mutex
}

// NewLedgerService creates a new LedgerService. db and cache may be nil.
func NewLedgerService(
	db *sql.DB,
	userRepo repository.UserRepository,
	rideRepo repository.RideRepository,
	balanceRepo repository.BalanceRepository,
	configRepo repository.ConfigRepository,
	cache AvailabilityCache,
) *LedgerService {
	return &LedgerService{
		db:          db,
		userRepo:    userRepo,
		rideRepo:    rideRepo,
		balanceRepo: balanceRepo,
		configRepo:  configRepo,
		cache:       cache,
	}
}

// RequestRideRequest contains the parameters for requesting a ride.
type RequestRideRequest struct {
	Rider   string
	Pickup  string
	Dropoff string
	Fare    int64
	Deposit int64
}

// RequestRide creates a new ride with the fare held in escrow by the
// ledger. The deposit must equal the fare exactly.
func (s *LedgerService) RequestRide(ctx context.Context, req RequestRideRequest) (*domain.Ride, error) {
	if req.Rider == "" {
		return nil, ErrEmptyAddress
	}
	if req.Pickup == "" || req.Dropoff == "" {
		return nil, ErrMissingLocation
	}
	if req.Fare <= 0 {
		return nil, ErrInvalidFare
	}
	if req.Deposit != req.Fare {
		return nil, ErrDepositMismatch
	}

	rider, err := s.userRepo.GetByAddress(ctx, req.Rider)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	if rider.Role != domain.RoleRider {
		return nil, ErrNotARider
	}

	ride := &domain.Ride{
		RiderAddress: req.Rider,
		Pickup:       req.Pickup,
		Dropoff:      req.Dropoff,
		Fare:         req.Fare,
		Status:       domain.RideStatusAvailable,
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	observability.RidesRequestedTotal.Inc()
	return ride, nil
}

// AcceptRide assigns the ride to the calling driver. Exactly one of any
// number of racing accepts wins; the rest observe the advanced status and
// fail.
func (s *LedgerService) AcceptRide(ctx context.Context, driver string, rideID int64) (*domain.Ride, error) {
	if driver == "" {
		return nil, ErrEmptyAddress
	}

	user, err := s.userRepo.GetByAddress(ctx, driver)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	if user.Role != domain.RoleDriver {
		return nil, ErrNotADriver
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusAvailable {
		return nil, ErrRideNotAvailable
	}

	ride.DriverAddress = driver
	ride.Status = domain.RideStatusInProgress
	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.RemoveAvailableDriver(ctx, driver)
	}
	return ride, nil
}

// CompleteRide settles an in-progress ride: the escrowed fare splits into
// the platform fee and the driver payment, credited to the respective
// withdrawable balances. The two credits always sum exactly to the fare.
func (s *LedgerService) CompleteRide(ctx context.Context, caller string, rideID int64) (*domain.Ride, error) {
	if caller == "" {
		return nil, ErrEmptyAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusInProgress {
		return nil, ErrRideNotInProgress
	}
	if caller != ride.DriverAddress {
		return nil, ErrNotRideDriver
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	platformFee, driverPayment := domain.SplitFare(ride.Fare, cfg.FeeBps)

	ride.Status = domain.RideStatusCompleted
	if err := s.settle(ctx, ride, []credit{
		{address: ride.DriverAddress, amount: driverPayment},
		{address: cfg.OwnerAddress, amount: platformFee},
	}); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.AddAvailableDriver(ctx, ride.DriverAddress)
	}
	observability.RidesCompletedTotal.Inc()
	observability.PlatformFeesTotal.Add(float64(platformFee))
	return ride, nil
}

// CancelRide refunds the escrowed fare to the rider. Only the requesting
// rider may cancel, and only while the ride is still Available.
func (s *LedgerService) CancelRide(ctx context.Context, caller string, rideID int64) (*domain.Ride, error) {
	if caller == "" {
		return nil, ErrEmptyAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusAvailable {
		return nil, ErrRideNotCancellable
	}
	if caller != ride.RiderAddress {
		return nil, ErrNotRideRider
	}

	ride.Status = domain.RideStatusCancelled
	if err := s.settle(ctx, ride, []credit{
		{address: ride.RiderAddress, amount: ride.Fare},
	}); err != nil {
		return nil, err
	}

	observability.RidesCancelledTotal.Inc()
	return ride, nil
}

// GetRide retrieves a ride by id.
func (s *LedgerService) GetRide(ctx context.Context, rideID int64) (*domain.Ride, error) {
	return s.rideRepo.GetByID(ctx, rideID)
}

// GetUserRides retrieves every ride where the address is rider or driver,
// in creation order.
func (s *LedgerService) GetUserRides(ctx context.Context, address string) ([]*domain.Ride, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}
	return s.rideRepo.GetByParticipant(ctx, address)
}

// GetAvailableDrivers returns the addresses of registered drivers not
// currently assigned to an InProgress ride.
func (s *LedgerService) GetAvailableDrivers(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAvailableDrivers(ctx); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	drivers, err := s.userRepo.GetByRole(ctx, domain.RoleDriver)
	if err != nil {
		return nil, err
	}
	busy, err := s.rideRepo.GetBusyDriverAddresses(ctx)
	if err != nil {
		return nil, err
	}

	busySet := make(map[string]bool, len(busy))
	for _, address := range busy {
		busySet[address] = true
	}

	var available []string
	for _, d := range drivers {
		if !busySet[d.Address] {
			available = append(available, d.Address)
		}
	}

	if s.cache != nil {
		_ = s.cache.SetAvailableDrivers(ctx, available)
	}
	return available, nil
}

// credit is one balance mutation inside a settlement.
type credit struct {
	address string
	amount  int64
}

// settle writes the ride's terminal status together with its balance
// credits, transactionally when a database is present.
func (s *LedgerService) settle(ctx context.Context, ride *domain.Ride, credits []credit) (err error) {
	if s.db == nil {
		if err := s.rideRepo.Update(ctx, ride); err != nil {
			return err
		}
		for _, c := range credits {
			if err := s.balanceRepo.Credit(ctx, c.address, c.amount); err != nil {
				return err
			}
		}
		return nil
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

	if err = postgres.NewRideRepositoryWithTx(tx).Update(ctx, ride); err != nil {
		return err
	}
	txBalances := postgres.NewBalanceRepositoryWithTx(tx)
	for _, c := range credits {
		if err = txBalances.Credit(ctx, c.address, c.amount); err != nil {
			return err
		}
	}
	return tx.Commit()
}
