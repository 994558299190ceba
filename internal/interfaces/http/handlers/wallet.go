// internal/interfaces/http/handlers/wallet.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/wallet"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
)

// WalletHandler serves ambassador commission endpoints
type WalletHandler struct {
	walletService *wallet.Service
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// Get returns the calling ambassador's stored wallet
func (h *WalletHandler) Get(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	w, err := h.walletService.Get(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": w})
}

// Recalculate recomputes the calling ambassador's commission over its
// approved orders and returns the updated wallet.
func (h *WalletHandler) Recalculate(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	w, err := h.walletService.Recalculate(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recalculate commission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Commission recalculated",
		"data":    w,
	})
}
