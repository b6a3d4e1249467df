package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusAvailable  RideStatus = "AVAILABLE"
	RideStatusInProgress RideStatus = "IN_PROGRESS"
	RideStatusCompleted  RideStatus = "COMPLETED"
	RideStatusCancelled  RideStatus = "CANCELLED"
)

// rideTransitions is the complete transition graph. Completed and
// Cancelled are terminal.
var rideTransitions = map[RideStatus][]RideStatus{
	RideStatusAvailable:  {RideStatusInProgress, RideStatusCancelled},
	RideStatusInProgress: {RideStatusCompleted},
	RideStatusCompleted:  {},
	RideStatusCancelled:  {},
}

// CanTransition reports whether from -> to is an allowed status transition.
func CanTransition(from, to RideStatus) bool {
	for _, s := range rideTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Ride is one entry in the append-only ride ledger. The fare is fixed at
// creation and held in escrow until a terminal transition releases it.
type Ride struct {
	ID            int64
	RiderAddress  string
	DriverAddress string // unset until accepted
	Pickup        string
	Dropoff       string
	Fare          int64 // smallest monetary unit, always > 0
	Status        RideStatus
	Rated         bool
	CreatedAt     time.Time
}

// Participant reports whether addr is the rider or the assigned driver.
func (r *Ride) Participant(addr string) bool {
	return addr == r.RiderAddress || (r.DriverAddress != "" && addr == r.DriverAddress)
}

// Counterparty returns the other participant for addr, or "" when addr is
// not a participant.
func (r *Ride) Counterparty(addr string) string {
	switch addr {
	case r.RiderAddress:
		return r.DriverAddress
	case r.DriverAddress:
		return r.RiderAddress
	}
	return ""
}
