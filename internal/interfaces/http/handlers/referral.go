// internal/interfaces/http/handlers/referral.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
)

// ReferralHandler handles public referral resolution
type ReferralHandler struct {
	referralService *referral.Service
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralService *referral.Service) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// ResolveCountry resolves the country behind a referral code. The
// storefront calls this on load to pick its currency; the response
// shape is its wire contract.
func (h *ReferralHandler) ResolveCountry(c *gin.Context) {
	ref := c.Query("ref")
	if ref == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ref query parameter is required"})
		return
	}

	ambassador, err := h.referralService.ResolveAmbassador(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, referral.ErrAmbassadorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Embajador no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve referral"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    ambassador.ID,
		"email": ambassador.Email,
		"pais":  ambassador.Country,
	})
}
