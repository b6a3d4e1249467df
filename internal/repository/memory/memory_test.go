package memory

import (
	"context"
	"errors"
	"testing"

	"rideledger/internal/domain"
	"rideledger/internal/repository"
)

func TestRideRepository_AllocatesSequentialIDs(t *testing.T) {
	t.Parallel()

	repo := NewRideRepository()
	for want := int64(1); want <= 3; want++ {
		ride := &domain.Ride{RiderAddress: "rider-1", Status: domain.RideStatusAvailable}
		if err := repo.Create(context.Background(), ride); err != nil {
			t.Fatalf("create: %v", err)
		}
		if ride.ID != want {
			t.Errorf("expected id %d, got %d", want, ride.ID)
		}
	}
}

func TestRideRepository_CopyOnRead(t *testing.T) {
	t.Parallel()

	repo := NewRideRepository()
	ride := &domain.Ride{RiderAddress: "rider-1", Status: domain.RideStatusAvailable}
	if err := repo.Create(context.Background(), ride); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(context.Background(), ride.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Status = domain.RideStatusCancelled

	again, err := repo.GetByID(context.Background(), ride.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Status != domain.RideStatusAvailable {
		t.Error("mutation of a returned ride leaked into the store")
	}
}

func TestRideRepository_GetBusyDriverAddresses(t *testing.T) {
	t.Parallel()

	repo := NewRideRepository()
	rides := []*domain.Ride{
		{RiderAddress: "r", DriverAddress: "d1", Status: domain.RideStatusCompleted},
		{RiderAddress: "r", DriverAddress: "d1", Status: domain.RideStatusInProgress},
		{RiderAddress: "r", DriverAddress: "d2", Status: domain.RideStatusInProgress},
		{RiderAddress: "r", Status: domain.RideStatusAvailable},
	}
	for _, ride := range rides {
		if err := repo.Create(context.Background(), ride); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	busy, err := repo.GetBusyDriverAddresses(context.Background())
	if err != nil {
		t.Fatalf("get busy drivers: %v", err)
	}
	if len(busy) != 2 || busy[0] != "d1" || busy[1] != "d2" {
		t.Errorf("expected [d1 d2], got %v", busy)
	}
}

func TestUserRepository_DuplicateCreate(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository()
	user := &domain.User{Address: "rider-1", Name: "Alice", Role: domain.RoleRider, Registered: true}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(context.Background(), &domain.User{Address: "rider-1"})
	if !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestConfigRepository_FirstInitWins(t *testing.T) {
	t.Parallel()

	repo := NewConfigRepository()
	if err := repo.Init(context.Background(), &domain.PlatformConfig{OwnerAddress: "owner-1", FeeBps: 1000}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := repo.Init(context.Background(), &domain.PlatformConfig{OwnerAddress: "owner-2", FeeBps: 0}); err != nil {
		t.Fatalf("second init: %v", err)
	}

	cfg, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.OwnerAddress != "owner-1" || cfg.FeeBps != 1000 {
		t.Errorf("existing record overwritten: %+v", cfg)
	}
}

func TestBalanceRepository_Drain(t *testing.T) {
	t.Parallel()

	repo := NewBalanceRepository()
	if _, err := repo.Drain(context.Background(), "driver-1"); !errors.Is(err, repository.ErrEmptyBalance) {
		t.Errorf("expected ErrEmptyBalance, got %v", err)
	}

	if err := repo.Credit(context.Background(), "driver-1", 90); err != nil {
		t.Fatalf("credit: %v", err)
	}
	amount, err := repo.Drain(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if amount != 90 {
		t.Errorf("expected 90, got %d", amount)
	}

	if _, err := repo.Drain(context.Background(), "driver-1"); !errors.Is(err, repository.ErrEmptyBalance) {
		t.Errorf("expected ErrEmptyBalance after drain, got %v", err)
	}
}
