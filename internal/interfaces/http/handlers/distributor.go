// internal/interfaces/http/handlers/distributor.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
)

// DistributorHandler manages distributors owned by a business
type DistributorHandler struct {
	referralService *referral.Service
}

// NewDistributorHandler creates a new distributor handler
func NewDistributorHandler(referralService *referral.Service) *DistributorHandler {
	return &DistributorHandler{referralService: referralService}
}

// Create creates a distributor under the calling business
func (h *DistributorHandler) Create(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	var req referral.CreateDistributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	distributor, err := h.referralService.CreateDistributor(c.Request.Context(), email, &req)
	if err != nil {
		if errors.Is(err, referral.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Distributor created successfully",
		"data":    distributor,
	})
}

// List lists the calling business's distributors
func (h *DistributorHandler) List(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	distributors, err := h.referralService.ListDistributors(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list distributors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": distributors})
}

// Update updates one of the calling business's distributors
func (h *DistributorHandler) Update(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid distributor ID"})
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

	distributor, err := h.referralService.UpdateDistributor(c.Request.Context(), email, uint(id), &req)
	if err != nil {
		writeOwnershipError(c, err, referral.ErrDistributorNotFound, "Distributor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Distributor updated successfully",
		"data":    distributor,
	})
}

// Delete deletes one of the calling business's distributors
func (h *DistributorHandler) Delete(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid distributor ID"})
		return
	}

	if err := h.referralService.DeleteDistributor(c.Request.Context(), email, uint(id)); err != nil {
		writeOwnershipError(c, err, referral.ErrDistributorNotFound, "Distributor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Distributor deleted successfully"})
}
