// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/infrastructure/database/redis"
)

// RateLimit limits requests per client IP using a fixed Redis window.
// If Redis is unavailable the request is allowed through.
func RateLimit(redisClient *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, cfg.Security.RateLimitWindow)
		}

		limit := int64(cfg.Security.RateLimitRequests)
		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}

		c.Writer.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > limit {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
