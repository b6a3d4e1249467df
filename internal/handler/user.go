package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideledger/internal/domain"
	"rideledger/internal/service"
)

// UserHandler handles HTTP requests for the participant registry.
type UserHandler struct {
	registry *service.RegistryService
	ledger   *service.LedgerService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(registry *service.RegistryService, ledger *service.LedgerService) *UserHandler {
	return &UserHandler{registry: registry, ledger: ledger}
}

// RegisterRequest is the HTTP request body for registration.
type RegisterRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Role    string `json:"role"` // RIDER or DRIVER
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	user, err := h.registry.Register(c.Request.Context(), service.RegisterRequest{
		Address: caller,
		Name:    req.Name,
		Contact: req.Contact,
		Role:    domain.Role(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser handles GET /v1/users/:address
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.registry.GetUser(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// GetUserRides handles GET /v1/users/:address/rides
func (h *UserHandler) GetUserRides(c *gin.Context) {
	rides, err := h.ledger.GetUserRides(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, toRideResponse(r))
	}
	c.JSON(http.StatusOK, response)
}
