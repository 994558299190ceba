// internal/interfaces/http/handlers/client.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/analytics"
	"github.com/your-org/ambassador-platform/internal/domain/client"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
)

// ClientHandler manages an ambassador's clients
type ClientHandler struct {
	clientService    *client.Service
	analyticsService *analytics.Service
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *client.Service, analyticsService *analytics.Service) *ClientHandler {
	return &ClientHandler{
		clientService:    clientService,
		analyticsService: analyticsService,
	}
}

// Create registers a client under the calling ambassador's ref
func (h *ClientHandler) Create(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	var req client.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.clientService.Create(c.Request.Context(), email, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Client registered successfully",
		"data":    created,
	})
}

// List lists the calling ambassador's clients
func (h *ClientHandler) List(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	clients, err := h.clientService.ListByRef(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": clients})
}

// Network lists the clients visible to the caller's network with
// their purchase aggregates.
func (h *ClientHandler) Network(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	activity, err := h.analyticsService.NetworkClients(c.Request.Context(), role, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list network clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": activity})
}
