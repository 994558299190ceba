// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/order"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
	"github.com/your-org/ambassador-platform/internal/pkg/pdf"
)

// OrderHandler serves order listings per role
type OrderHandler struct {
	orderService    *order.Service
	referralService *referral.Service
	pdfService      *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, referralService *referral.Service, pdfService *pdf.Service) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		referralService: referralService,
		pdfService:      pdfService,
	}
}

// ListMine lists the calling ambassador's orders, syncing pending
// statuses from recorded transactions.
func (h *OrderHandler) ListMine(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	orders, err := h.orderService.ListByRef(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// ListApproved lists the calling ambassador's approved orders
func (h *OrderHandler) ListApproved(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	orders, err := h.orderService.ListApprovedByRef(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list approved orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// ListByClient lists a buyer's approved orders under the calling
// ambassador's ref.
func (h *OrderHandler) ListByClient(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	clientEmail := c.Param("email")
	if clientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Client email is required"})
		return
	}

	orders, err := h.orderService.ListApprovedByClient(c.Request.Context(), email, clientEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list client orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// Network lists the orders across the caller's network
func (h *OrderHandler) Network(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	refs, err := h.referralService.NetworkRefs(c.Request.Context(), role, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve network"})
		return
	}

	orders, err := h.orderService.ListByRefs(c.Request.Context(), refs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// Receipt renders the PDF receipt of an order attributed to the
// calling ambassador.
func (h *OrderHandler) Receipt(c *gin.Context) {
	email, _ := middleware.GetUserEmailFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	o, err := h.orderService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	if o.Ref != strings.ToLower(email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Order is not attributed to you"})
		return
	}

	receipt, err := h.pdfService.GenerateReceipt(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	filename := fmt.Sprintf("recibo-%06d.pdf", o.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", receipt.Bytes())
}
