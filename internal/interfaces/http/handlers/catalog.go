// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/domain/catalog"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
)

// CatalogHandler serves the public product catalog
type CatalogHandler struct {
	catalogService  *catalog.Service
	referralService *referral.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service, referralService *referral.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalogService,
		referralService: referralService,
	}
}

// ListProducts lists active products priced for the visitor's referral
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	country := h.referralService.ResolveCountry(c.Request.Context(), c.Query("ref"))

	products, err := h.catalogService.ListProducts(country, c.Query("line"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"products": products,
			"currency": catalog.CurrencyFor(country),
		},
	})
}

// GetProduct returns one product priced for the visitor's referral
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	country := h.referralService.ResolveCountry(c.Request.Context(), c.Query("ref"))

	product, err := h.catalogService.GetProduct(uint(id), country)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}
