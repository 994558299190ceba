// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/domain/referral"
	"github.com/your-org/ambassador-platform/internal/interfaces/http/middleware"
	"github.com/your-org/ambassador-platform/internal/pkg/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	referralService *referral.Service
	jwtManager      *auth.JWTManager
	config          *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(referralService *referral.Service, jwtManager *auth.JWTManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		referralService: referralService,
		jwtManager:      jwtManager,
		config:          cfg,
	}
}

// Login authenticates any account type by email and password. The
// response names the role so the dashboard can pick its view.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	account, err := h.referralService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := h.jwtManager.GenerateTokenPair(account.Email, account.Name, account.Role, account.Country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"rol":           account.Role,
		"nombre":        account.Name,
		"pais":          account.Country,
	})
}

// RegisterBusiness registers a new business account
func (h *AuthHandler) RegisterBusiness(c *gin.Context) {
	var req referral.RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	business, err := h.referralService.RegisterBusiness(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, referral.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Business registered successfully",
		"data":    business,
	})
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	claims, err := h.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, refreshToken, err := h.jwtManager.GenerateTokenPair(claims.Email, claims.Name, claims.Role, claims.Country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}

// Profile returns the authenticated principal
func (h *AuthHandler) Profile(c *gin.Context) {
	email, exists := middleware.GetUserEmailFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)
	name, _ := middleware.GetUserNameFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"email": email,
			"name":  name,
			"role":  role,
		},
	})
}
