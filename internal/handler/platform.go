package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideledger/internal/service"
)

// PlatformHandler handles HTTP requests for the fee policy.
type PlatformHandler struct {
	fees *service.FeeService
}

// NewPlatformHandler creates a new PlatformHandler.
func NewPlatformHandler(fees *service.FeeService) *PlatformHandler {
	return &PlatformHandler{fees: fees}
}

// SetFeeRequest is the HTTP request body for updating the platform fee.
type SetFeeRequest struct {
	Bps int64 `json:"bps"`
}

// SetFee handles PUT /v1/platform/fee
func (h *PlatformHandler) SetFee(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req SetFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	if err := h.fees.SetPlatformFee(c.Request.Context(), caller, req.Bps); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bps": req.Bps})
}

// GetFee handles GET /v1/platform/fee
func (h *PlatformHandler) GetFee(c *gin.Context) {
	bps, err := h.fees.GetPlatformFee(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bps": bps})
}
