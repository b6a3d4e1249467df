package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"rideledger/internal/domain"
	"rideledger/internal/repository/memory"
	"rideledger/internal/service"
)

const testOwner = "owner-1"

// env bundles the services over a fresh in-memory store.
type env struct {
	users    *memory.UserRepository
	rides    *memory.RideRepository
	balances *memory.BalanceRepository
	config   *memory.ConfigRepository

	registry *service.RegistryService
	ledger   *service.LedgerService
	escrow   *service.EscrowService
	fees     *service.FeeService
}

func newEnv(t *testing.T, feeBps int64) *env {
	t.Helper()
	return newEnvWithCache(t, feeBps, nil)
}

func newEnvWithCache(t *testing.T, feeBps int64, cache service.AvailabilityCache) *env {
	t.Helper()

	e := &env{
		users:    memory.NewUserRepository(),
		rides:    memory.NewRideRepository(),
		balances: memory.NewBalanceRepository(),
		config:   memory.NewConfigRepository(),
	}

	if err := e.config.Init(context.Background(), &domain.PlatformConfig{
		OwnerAddress: testOwner,
		FeeBps:       feeBps,
	}); err != nil {
		t.Fatalf("init config: %v", err)
	}

	e.registry = service.NewRegistryService(nil, e.users, e.rides, cache)
	e.ledger = service.NewLedgerService(nil, e.users, e.rides, e.balances, e.config, cache)
	e.escrow = service.NewEscrowService(e.balances, service.NewLogPayout())
	e.fees = service.NewFeeService(e.config)
	return e
}

func (e *env) mustRegister(t *testing.T, address string, role domain.Role) {
	t.Helper()
	_, err := e.registry.Register(context.Background(), service.RegisterRequest{
		Address: address,
		Name:    "user " + address,
		Contact: "contact " + address,
		Role:    role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", address, err)
	}
}

func (e *env) mustRequestRide(t *testing.T, rider string, fare int64) *domain.Ride {
	t.Helper()
	ride, err := e.ledger.RequestRide(context.Background(), service.RequestRideRequest{
		Rider:   rider,
		Pickup:  "Location A",
		Dropoff: "Location B",
		Fare:    fare,
		Deposit: fare,
	})
	if err != nil {
		t.Fatalf("request ride: %v", err)
	}
	return ride
}

// completedRide drives a fresh ride through accept and complete.
func (e *env) completedRide(t *testing.T, rider, driver string, fare int64) *domain.Ride {
	t.Helper()
	ride := e.mustRequestRide(t, rider, fare)
	if _, err := e.ledger.AcceptRide(context.Background(), driver, ride.ID); err != nil {
		t.Fatalf("accept ride: %v", err)
	}
	ride, err := e.ledger.CompleteRide(context.Background(), driver, ride.ID)
	if err != nil {
		t.Fatalf("complete ride: %v", err)
	}
	return ride
}

func (e *env) balance(t *testing.T, address string) int64 {
	t.Helper()
	amount, err := e.escrow.GetBalance(context.Background(), address)
	if err != nil {
		t.Fatalf("get balance %s: %v", address, err)
	}
	return amount
}

// fakeAvailabilityCache is an in-process stand-in for the redis driver set.
type fakeAvailabilityCache struct {
	mu      sync.Mutex
	drivers map[string]bool
}

func newFakeAvailabilityCache() *fakeAvailabilityCache {
	return &fakeAvailabilityCache{drivers: make(map[string]bool)}
}

func (c *fakeAvailabilityCache) GetAvailableDrivers(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.drivers))
	for d := range c.drivers {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

func (c *fakeAvailabilityCache) SetAvailableDrivers(ctx context.Context, addresses []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drivers = make(map[string]bool, len(addresses))
	for _, a := range addresses {
		c.drivers[a] = true
	}
	return nil
}

func (c *fakeAvailabilityCache) AddAvailableDriver(ctx context.Context, address string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drivers[address] = true
	return nil
}

func (c *fakeAvailabilityCache) RemoveAvailableDriver(ctx context.Context, address string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drivers, address)
	return nil
}

// failingPayout always refuses the transfer.
type failingPayout struct{}

func (failingPayout) Transfer(ctx context.Context, address string, amount int64) (string, error) {
	return "", errors.New("rail unavailable")
}

func wantErrKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected error of kind %v, got %v", kind, err)
	}
}
