package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideledger/internal/domain"
	"rideledger/internal/middleware"
	"rideledger/internal/repository"
	"rideledger/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// respondError sends an error response with the status and kind derived
// from the error's taxonomy.
func respondError(c *gin.Context, err error) {
	code, kind := classifyError(err)
	c.JSON(code, ErrorResponse{Error: err.Error(), Kind: kind})
}

// classifyError maps service/repository errors to an HTTP status and a
// stable kind tag callers can branch on.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, service.ErrAuthorization):
		return http.StatusForbidden, "authorization"
	case errors.Is(err, service.ErrState):
		return http.StatusConflict, "state"
	case errors.Is(err, service.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient_funds"
	default:
		return http.StatusInternalServerError, ""
	}
}

// callerAddress returns the authenticated caller address supplied by the
// external wallet/session layer, or responds 401 and returns false.
func callerAddress(c *gin.Context) (string, bool) {
	addr := middleware.CallerAddress(c)
	if addr == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "caller address required", Kind: "unauthenticated"})
		return "", false
	}
	return addr, true
}

// UserResponse is the HTTP representation of a registered participant.
type UserResponse struct {
	Address     string  `json:"address"`
	Name        string  `json:"name"`
	Contact     string  `json:"contact"`
	Role        string  `json:"role"`
	Registered  bool    `json:"registered"`
	Rating      float64 `json:"rating"`
	RatingCount int64   `json:"rating_count"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		Address:     u.Address,
		Name:        u.Name,
		Contact:     u.Contact,
		Role:        string(u.Role),
		Registered:  u.Registered,
		Rating:      u.Rating,
		RatingCount: u.RatingCount,
	}
}

// RideResponse is the HTTP representation of a ledger ride.
type RideResponse struct {
	ID            int64  `json:"id"`
	RiderAddress  string `json:"rider_address"`
	DriverAddress string `json:"driver_address,omitempty"`
	Pickup        string `json:"pickup"`
	Dropoff       string `json:"dropoff"`
	Fare          int64  `json:"fare"`
	Status        string `json:"status"`
	Rated         bool   `json:"rated"`
	CreatedAt     string `json:"created_at"`
}

func toRideResponse(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:            r.ID,
		RiderAddress:  r.RiderAddress,
		DriverAddress: r.DriverAddress,
		Pickup:        r.Pickup,
		Dropoff:       r.Dropoff,
		Fare:          r.Fare,
		Status:        string(r.Status),
		Rated:         r.Rated,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
