// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/payment"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
)

// PaymentHandler lets a business inspect its gateway payments
type PaymentHandler struct {
	client          *payment.Client
	referralService *referral.Service
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(client *payment.Client, referralService *referral.Service) *PaymentHandler {
	return &PaymentHandler{
		client:          client,
		referralService: referralService,
	}
}

// Search lists the calling business's gateway payments in a date
// range. Defaults to the last 30 days.
func (h *PaymentHandler) Search(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	business, err := h.referralService.GetBusinessByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business"})
		return
	}
	if !business.HasCredentials() {
		c.JSON(http.StatusConflict, gin.H{"error": "Business has no payment credentials"})
		return
	}

	end := time.Now()
	begin := end.AddDate(0, 0, -30)
	if v := c.Query("begin"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			begin = parsed
		}
	}
	if v := c.Query("end"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			end = parsed.Add(24*time.Hour - time.Second)
		}
	}

	payments, err := h.client.SearchPayments(c.Request.Context(), business.MPAccessToken, begin, end)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to search payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": payments})
}
