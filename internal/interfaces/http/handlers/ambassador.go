// internal/interfaces/http/handlers/ambassador.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
)

// AmbassadorHandler manages ambassadors owned by a distributor
type AmbassadorHandler struct {
	referralService *referral.Service
}

// NewAmbassadorHandler creates a new ambassador handler
func NewAmbassadorHandler(referralService *referral.Service) *AmbassadorHandler {
	return &AmbassadorHandler{referralService: referralService}
}

// Create creates an ambassador under the calling distributor
func (h *AmbassadorHandler) Create(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	var req referral.CreateAmbassadorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ambassador, err := h.referralService.CreateAmbassador(c.Request.Context(), email, &req)
	if err != nil {
		if errors.Is(err, referral.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ambassador created successfully",
		"data":    ambassador,
	})
}

// List lists the calling distributor's ambassadors
func (h *AmbassadorHandler) List(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	ambassadors, err := h.referralService.ListAmbassadors(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ambassadors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ambassadors})
}

// Update updates one of the calling distributor's ambassadors
func (h *AmbassadorHandler) Update(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ambassador ID"})
		return
	}

	var req referral.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ambassador, err := h.referralService.UpdateAmbassador(c.Request.Context(), email, uint(id), &req)
	if err != nil {
		writeOwnershipError(c, err, referral.ErrAmbassadorNotFound, "Ambassador not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ambassador updated successfully",
		"data":    ambassador,
	})
}

// Delete deletes one of the calling distributor's ambassadors
func (h *AmbassadorHandler) Delete(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ambassador ID"})
		return
	}

	if err := h.referralService.DeleteAmbassador(c.Request.Context(), email, uint(id)); err != nil {
		writeOwnershipError(c, err, referral.ErrAmbassadorNotFound, "Ambassador not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ambassador deleted successfully"})
}

// writeOwnershipError maps CRUD errors shared by the account handlers.
func writeOwnershipError(c *gin.Context, err, notFound error, notFoundMsg string) {
	switch {
	case errors.Is(err, notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, referral.ErrNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account does not belong to your network"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
