package service_test

import (
	"context"
	"testing"

	"rideledger/internal/domain"
	"rideledger/internal/service"
)

func TestRegister_CreatesUserWithZeroedRating(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)

	user, err := e.registry.Register(context.Background(), service.RegisterRequest{
		Address: "rider-1",
		Name:    "John Doe",
		Contact: "1234567890",
		Role:    domain.RoleRider,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !user.Registered {
		t.Error("expected registered == true")
	}
	if user.Rating != 0 || user.RatingCount != 0 {
		t.Errorf("expected zeroed rating counters, got %v/%d", user.Rating, user.RatingCount)
	}

	stored, err := e.registry.GetUser(context.Background(), "rider-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Name != "John Doe" || stored.Contact != "1234567890" || stored.Role != domain.RoleRider {
		t.Errorf("stored identity fields differ: %+v", stored)
	}
}

func TestRegister_DuplicateAddressFails(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)
	e.mustRegister(t, "rider-1", domain.RoleRider)

	_, err := e.registry.Register(context.Background(), service.RegisterRequest{
		Address: "rider-1",
		Name:    "John Doe 2",
		Contact: "1234567890",
		Role:    domain.RoleRider,
	})
	wantErrKind(t, err, service.ErrValidation)

	// The first registration must be untouched.
	stored, err := e.registry.GetUser(context.Background(), "rider-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Name != "user rider-1" {
		t.Errorf("first registration overwritten: %q", stored.Name)
	}
}

func TestRegister_InvalidRoleFails(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)

	_, err := e.registry.Register(context.Background(), service.RegisterRequest{
		Address: "user-1",
		Name:    "John",
		Contact: "555",
		Role:    domain.Role("ADMIN"),
	})
	wantErrKind(t, err, service.ErrValidation)
}

func TestRate_RunningAverage(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)
	e.mustRegister(t, "rider-1", domain.RoleRider)
	e.mustRegister(t, "driver-1", domain.RoleDriver)

	first := e.completedRide(t, "rider-1", "driver-1", 100)
	second := e.completedRide(t, "rider-1", "driver-1", 100)

	ratee, err := e.registry.Rate(context.Background(), service.RateRequest{
		Rater:  "rider-1",
		Ratee:  "driver-1",
		RideID: first.ID,
		Score:  5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratee.Rating != 5.0 || ratee.RatingCount != 1 {
		t.Errorf("expected rating 5.0 count 1, got %v/%d", ratee.Rating, ratee.RatingCount)
	}

	ratee, err = e.registry.Rate(context.Background(), service.RateRequest{
		Rater:  "rider-1",
		Ratee:  "driver-1",
		RideID: second.ID,
		Score:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratee.Rating != 4.0 || ratee.RatingCount != 2 {
		t.Errorf("expected rating 4.0 count 2, got %v/%d", ratee.Rating, ratee.RatingCount)
	}
}

func TestRate_SecondRatingOnSameRideFails(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)
	e.mustRegister(t, "rider-1", domain.RoleRider)
	e.mustRegister(t, "driver-1", domain.RoleDriver)
	ride := e.completedRide(t, "rider-1", "driver-1", 100)

	if _, err := e.registry.Rate(context.Background(), service.RateRequest{
		Rater: "rider-1", Ratee: "driver-1", RideID: ride.ID, Score: 5,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := e.registry.Rate(context.Background(), service.RateRequest{
		Rater: "rider-1", Ratee: "driver-1", RideID: ride.ID, Score: 4,
	})
	wantErrKind(t, err, service.ErrState)
}

func TestRate_DriverCanRateRider(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)
	e.mustRegister(t, "rider-1", domain.RoleRider)
	e.mustRegister(t, "driver-1", domain.RoleDriver)
	ride := e.completedRide(t, "rider-1", "driver-1", 100)

	ratee, err := e.registry.Rate(context.Background(), service.RateRequest{
		Rater: "driver-1", Ratee: "rider-1", RideID: ride.ID, Score: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratee.Address != "rider-1" || ratee.Rating != 4.0 {
		t.Errorf("unexpected ratee %s rating %v", ratee.Address, ratee.Rating)
	}
}

func TestRate_NonParticipantFails(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)
	e.mustRegister(t, "rider-1", domain.RoleRider)
	e.mustRegister(t, "driver-1", domain.RoleDriver)
	e.mustRegister(t, "rider-2", domain.RoleRider)
	ride := e.completedRide(t, "rider-1", "driver-1", 100)

	_, err := e.registry.Rate(context.Background(), service.RateRequest{
		Rater: "rider-2", Ratee: "driver-1", RideID: ride.ID, Score: 5,
	})
	wantErrKind(t, err, service.ErrAuthorization)
}

func TestRate_UnregisteredRaterFails(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)
	e.mustRegister(t, "rider-1", domain.RoleRider)
	e.mustRegister(t, "driver-1", domain.RoleDriver)
	ride := e.completedRide(t, "rider-1", "driver-1", 100)

	_, err := e.registry.Rate(context.Background(), service.RateRequest{
		Rater: "stranger", Ratee: "driver-1", RideID: ride.ID, Score: 5,
	})
	wantErrKind(t, err, service.ErrValidation)
}

func TestRate_UncompletedRideFails(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)
	e.mustRegister(t, "rider-1", domain.RoleRider)
	e.mustRegister(t, "driver-1", domain.RoleDriver)
	ride := e.mustRequestRide(t, "rider-1", 100)

	if _, err := e.ledger.AcceptRide(context.Background(), "driver-1", ride.ID); err != nil {
		t.Fatalf("accept ride: %v", err)
	}

	_, err := e.registry.Rate(context.Background(), service.RateRequest{
		Rater: "rider-1", Ratee: "driver-1", RideID: ride.ID, Score: 5,
	})
	wantErrKind(t, err, service.ErrState)
}

func TestRate_ScoreOutOfRangeFails(t *testing.T) {
	t.Parallel()

	e := newEnv(t, 1000)
	e.mustRegister(t, "rider-1", domain.RoleRider)
	e.mustRegister(t, "driver-1", domain.RoleDriver)
	ride := e.completedRide(t, "rider-1", "driver-1", 100)

	for _, score := range []int64{0, 6, -1} {
		_, err := e.registry.Rate(context.Background(), service.RateRequest{
			Rater: "rider-1", Ratee: "driver-1", RideID: ride.ID, Score: score,
		})
		wantErrKind(t, err, service.ErrValidation)
	}
}
