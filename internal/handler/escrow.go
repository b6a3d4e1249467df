package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideledger/internal/service"
)

// EscrowHandler handles HTTP requests for withdrawable balances.
type EscrowHandler struct {
	escrow *service.EscrowService
}

// NewEscrowHandler creates a new EscrowHandler.
func NewEscrowHandler(escrow *service.EscrowService) *EscrowHandler {
	return &EscrowHandler{escrow: escrow}
}

// WithdrawResponse is the HTTP response for a successful withdrawal.
type WithdrawResponse struct {
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

// Withdraw handles POST /v1/balance/withdraw
func (h *EscrowHandler) Withdraw(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	result, err := h.escrow.Withdraw(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, WithdrawResponse{Amount: result.Amount, Reference: result.Reference})
}

// GetBalance handles GET /v1/balance/:address
func (h *EscrowHandler) GetBalance(c *gin.Context) {
	balance, err := h.escrow.GetBalance(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": c.Param("address"), "balance": balance})
}
