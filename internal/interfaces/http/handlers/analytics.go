// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/analytics"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
)

// AnalyticsHandler serves dashboard metrics
type AnalyticsHandler struct {
	analyticsService *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard returns the metrics scoped to the caller's role
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	metrics, err := h.analyticsService.Dashboard(c.Request.Context(), role, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": metrics})
}
