// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/checkout"
	"github.com/your-org/ambassador-platform/internal/domain/payment"
)

// CheckoutHandler handles the public checkout submission
type CheckoutHandler struct {
	checkoutService *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CreatePreference validates the order form, persists a pending order
// and returns the gateway init_point the buyer is redirected to.
func (h *CheckoutHandler) CreatePreference(c *gin.Context) {
	var req checkout.CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.checkoutService.CreatePreference(c.Request.Context(), &req)
	if err != nil {
		var verrs checkout.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
		case errors.Is(err, checkout.ErrUnknownRef):
			c.JSON(http.StatusNotFound, gin.H{"error": "Embajador no encontrado"})
		case errors.Is(err, payment.ErrMissingAccessToken):
			c.JSON(http.StatusConflict, gin.H{"error": "Business has no payment credentials"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment preference"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"init_point": resp.InitPoint,
		"order_id":   resp.OrderID,
	})
}
