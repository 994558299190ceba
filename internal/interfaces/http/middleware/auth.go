// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/pkg/auth"
)

const (
	ContextUserEmail   = "user_email"
	ContextUserName    = "user_name"
	ContextUserRole    = "user_role"
	ContextUserCountry = "user_country"
)

// AuthMiddleware validates the bearer token and stores the principal
// in the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserCountry, claims.Country)
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. Must run after
// AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetUserRoleFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// OptionalAuth stores the principal when a valid token is present but
// lets anonymous requests through.
func OptionalAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err == nil {
			if claims, err := jwtManager.ValidateAccessToken(token); err == nil {
				c.Set(ContextUserEmail, claims.Email)
				c.Set(ContextUserName, claims.Name)
				c.Set(ContextUserRole, claims.Role)
				c.Set(ContextUserCountry, claims.Country)
			}
		}
		c.Next()
	}
}

// GetUserEmailFromContext returns the authenticated email.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(ContextUserEmail)
	if !exists {
		return "", false
	}
	value, ok := email.(string)
	return value, ok
}

// GetUserRoleFromContext returns the authenticated role.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	role, exists := c.Get(ContextUserRole)
	if !exists {
		return "", false
	}
	value, ok := role.(string)
	return value, ok
}

// GetUserNameFromContext returns the authenticated display name.
func GetUserNameFromContext(c *gin.Context) (string, bool) {
	name, exists := c.Get(ContextUserName)
	if !exists {
		return "", false
	}
	value, ok := name.(string)
	return value, ok
}
