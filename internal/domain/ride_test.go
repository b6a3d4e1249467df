package domain

import "testing"

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := map[[2]RideStatus]bool{
		{RideStatusAvailable, RideStatusInProgress}: true,
		{RideStatusAvailable, RideStatusCancelled}:  true,
		{RideStatusInProgress, RideStatusCompleted}: true,
	}

	statuses := []RideStatus{
		RideStatusAvailable, RideStatusInProgress,
		RideStatusCompleted, RideStatusCancelled,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]RideStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestRideParticipant(t *testing.T) {
	t.Parallel()

	r := &Ride{RiderAddress: "rider-1"}
	if !r.Participant("rider-1") {
		t.Error("rider must be a participant")
	}
	if r.Participant("") {
		t.Error("empty address must not match the unassigned driver slot")
	}

	r.DriverAddress = "driver-1"
	if !r.Participant("driver-1") {
		t.Error("assigned driver must be a participant")
	}
	if r.Participant("stranger") {
		t.Error("stranger must not be a participant")
	}
}

func TestRideCounterparty(t *testing.T) {
	t.Parallel()

	r := &Ride{RiderAddress: "rider-1", DriverAddress: "driver-1"}
	if got := r.Counterparty("rider-1"); got != "driver-1" {
		t.Errorf("expected driver-1, got %q", got)
	}
	if got := r.Counterparty("driver-1"); got != "rider-1" {
		t.Errorf("expected rider-1, got %q", got)
	}
	if got := r.Counterparty("stranger"); got != "" {
		t.Errorf("expected empty counterparty, got %q", got)
	}
}
