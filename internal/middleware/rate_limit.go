package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/utils"
	"github.com/walatech/tenant-core/pkg/logger"
)

type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// TenantRateLimit implements per-tenant rate limiting. Requests are keyed by
// the resolved tenant, then the token's tenant, then the client IP.
func (m *RateLimitMiddleware) TenantRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := m.getTenantRateLimit()
		key := m.tenantKey(c)
		m.limit(c, key, limit, "Rate limit exceeded")
	}
}

// GlobalRateLimit implements global rate limiting based on IP
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:global:%s", c.ClientIP())
		m.limit(c, key, limit, "Global rate limit exceeded")
	}
}

func (m *RateLimitMiddleware) tenantKey(c *gin.Context) string {
	if tenantID, err := utils.GetEffectiveTenantID(utils.RequestCtx(c)); err == nil {
		return fmt.Sprintf("rate_limit:tenant:%s", tenantID)
	}
	return fmt.Sprintf("rate_limit:ip:%s", c.ClientIP())
}

// limit counts the request against key in a one minute window. Redis
// errors let the request through.
func (m *RateLimitMiddleware) limit(c *gin.Context, key string, limit int, message string) {
	ctx := c.Request.Context()
	reset := strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10)

	// Check current request count
	current, err := m.redis.Get(ctx, key).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		m.logger.Error("Redis error in rate limiting", err)
		c.Next()
		return
	}

	if current >= limit {
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", reset)

		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": message,
			"limit": limit,
			"reset": time.Now().Add(time.Minute).Unix(),
		})
		c.Abort()
		return
	}

	// Increment counter
	pipe := m.redis.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		m.logger.Error("Redis pipeline error in rate limiting", err)
	}

	remaining := max(limit-(current+1), 0)

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", reset)

	c.Next()
}

func (m *RateLimitMiddleware) getTenantRateLimit() int {
	if m.config.DefaultRateLimit > 0 {
		return m.config.DefaultRateLimit
	}
	return 1000 // Default: 1000 requests per minute
}
