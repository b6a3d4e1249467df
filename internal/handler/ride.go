package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideledger/internal/service"
)

// RideHandler handles HTTP requests for the ride ledger.
type RideHandler struct {
	ledger   *service.LedgerService
	registry *service.RegistryService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(ledger *service.LedgerService, registry *service.RegistryService) *RideHandler {
	return &RideHandler{ledger: ledger, registry: registry}
}

// RequestRideRequest is the HTTP request body for requesting a ride.
type RequestRideRequest struct {
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
	Fare    int64  `json:"fare"`
	Deposit int64  `json:"deposit"`
}

// RateRequest is the HTTP request body for rating a ride's counterparty.
type RateRequest struct {
	Ratee string `json:"ratee"`
	Score int64  `json:"score"`
}

// RequestRide handles POST /v1/rides
func (h *RideHandler) RequestRide(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	ride, err := h.ledger.RequestRide(c.Request.Context(), service.RequestRideRequest{
		Rider:   caller,
		Pickup:  req.Pickup,
		Dropoff: req.Dropoff,
		Fare:    req.Fare,
		Deposit: req.Deposit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.ledger.GetRide(c.Request.Context(), rideID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// AcceptRide handles POST /v1/rides/:id/accept
func (h *RideHandler) AcceptRide(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.ledger.AcceptRide(c.Request.Context(), caller, rideID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// CompleteRide handles POST /v1/rides/:id/complete
func (h *RideHandler) CompleteRide(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.ledger.CompleteRide(c.Request.Context(), caller, rideID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	ride, err := h.ledger.CancelRide(c.Request.Context(), caller, rideID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// Rate handles POST /v1/rides/:id/rate
func (h *RideHandler) Rate(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	rideID, ok := rideIDParam(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	ratee, err := h.registry.Rate(c.Request.Context(), service.RateRequest{
		Rater:  caller,
		Ratee:  req.Ratee,
		RideID: rideID,
		Score:  req.Score,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(ratee))
}

// GetAvailableDrivers handles GET /v1/drivers/available
func (h *RideHandler) GetAvailableDrivers(c *gin.Context) {
	drivers, err := h.ledger.GetAvailableDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if drivers == nil {
		drivers = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// rideIDParam parses the :id path parameter, responding 400 on garbage.
func rideIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid ride id", Kind: "validation"})
		return 0, false
	}
	return id, true
}
