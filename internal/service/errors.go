package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure a service returns wraps exactly one of these,
// so callers can branch on the kind with errors.Is while still rendering
// the specific message.
var (
	// ErrValidation marks malformed or duplicate input.
	ErrValidation = errors.New("validation error")

	// ErrAuthorization marks a caller lacking the required role,
	// ownership, or participation.
	ErrAuthorization = errors.New("authorization error")

	// ErrState marks an operation invalid for the ride's current status.
	ErrState = errors.New("state error")

	// ErrInsufficientFunds marks a withdrawal with nothing to withdraw.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

var (
	// ErrEmptyAddress is returned when a caller address is missing.
	ErrEmptyAddress = fmt.Errorf("address is required: %w", ErrValidation)

	// ErrAlreadyRegistered is returned when registering a taken address.
	ErrAlreadyRegistered = fmt.Errorf("user already registered: %w", ErrValidation)

	// ErrNotRegistered is returned when an operation names an unregistered
	// address.
	ErrNotRegistered = fmt.Errorf("user not registered: %w", ErrValidation)

	// ErrMissingProfile is returned when registering without a name or
	// contact.
	ErrMissingProfile = fmt.Errorf("name and contact are required: %w", ErrValidation)

	// ErrInvalidRole is returned when registering with an unknown role.
	ErrInvalidRole = fmt.Errorf("role must be RIDER or DRIVER: %w", ErrValidation)

	// ErrNotARider is returned when a ride is requested by a non-rider.
	ErrNotARider = fmt.Errorf("caller is not a registered rider: %w", ErrValidation)

	// ErrNotADriver is returned when a ride is accepted by a non-driver.
	ErrNotADriver = fmt.Errorf("caller is not a registered driver: %w", ErrValidation)

	// ErrInvalidFare is returned when the fare is not positive.
	ErrInvalidFare = fmt.Errorf("fare must be positive: %w", ErrValidation)

	// ErrDepositMismatch is returned when the deposited value does not
	// equal the fare.
	ErrDepositMismatch = fmt.Errorf("deposit must equal fare: %w", ErrValidation)

	// ErrMissingLocation is returned when pickup or dropoff is empty.
	ErrMissingLocation = fmt.Errorf("pickup and dropoff are required: %w", ErrValidation)

	// ErrInvalidScore is returned when a rating score is outside 1-5.
	ErrInvalidScore = fmt.Errorf("score must be an integer between 1 and 5: %w", ErrValidation)

	// ErrFeeOutOfRange is returned when the fee fraction is outside
	// 0-10000 basis points.
	ErrFeeOutOfRange = fmt.Errorf("fee must be between 0 and 10000 basis points: %w", ErrValidation)

	// ErrNotOwner is returned when a non-owner configures the platform.
	ErrNotOwner = fmt.Errorf("caller is not the platform owner: %w", ErrAuthorization)

	// ErrNotRideDriver is returned when a ride is completed by anyone but
	// its assigned driver.
	ErrNotRideDriver = fmt.Errorf("caller is not the assigned driver: %w", ErrAuthorization)

	// ErrNotRideRider is returned when a ride is cancelled by anyone but
	// its rider.
	ErrNotRideRider = fmt.Errorf("caller is not the requesting rider: %w", ErrAuthorization)

	// ErrNotParticipant is returned when a rating names a pair that did
	// not share the ride.
	ErrNotParticipant = fmt.Errorf("caller did not share this ride with the rated user: %w", ErrAuthorization)

	// ErrRideNotAvailable is returned when accepting a ride that has
	// already advanced past Available.
	ErrRideNotAvailable = fmt.Errorf("ride is not available: %w", ErrState)

	// ErrRideNotInProgress is returned when completing a ride that is not
	// in progress.
	ErrRideNotInProgress = fmt.Errorf("ride is not in progress: %w", ErrState)

	// ErrRideNotCancellable is returned when cancelling a ride that has
	// already been accepted, completed, or cancelled.
	ErrRideNotCancellable = fmt.Errorf("ride can no longer be cancelled: %w", ErrState)

	// ErrRideNotCompleted is returned when rating a ride that has not
	// completed.
	ErrRideNotCompleted = fmt.Errorf("ride is not completed: %w", ErrState)

	// ErrRideAlreadyRated is returned when rating a ride a second time.
	ErrRideAlreadyRated = fmt.Errorf("ride has already been rated: %w", ErrState)

	// ErrNoWithdrawableBalance is returned when withdrawing a zero
	// balance.
	ErrNoWithdrawableBalance = fmt.Errorf("no withdrawable balance: %w", ErrInsufficientFunds)
)
