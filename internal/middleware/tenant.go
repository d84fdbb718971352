package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/metrics"
	"github.com/walatech/tenant-core/internal/service"
	"github.com/walatech/tenant-core/internal/utils"
	"github.com/walatech/tenant-core/pkg/logger"
)

type TenantResolver interface {
	Resolve(ctx context.Context, host string) (*domain.Tenant, error)
}

type TenantMiddleware struct {
	resolver TenantResolver
	logger   *logger.Logger
}

func NewTenantMiddleware(resolver TenantResolver, logger *logger.Logger) *TenantMiddleware {
	return &TenantMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// ResolveTenant maps the request host to a tenant and attaches it to the
// request. Requests for unknown or inactive tenants are rejected here.
// Hosts without a subdomain pass through without a tenant.
func (m *TenantMiddleware) ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host
		tenant, err := m.resolver.Resolve(c.Request.Context(), host)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTenantNotFound):
				metrics.RecordResolution("not_found")
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, service.ErrTenantInactive):
				metrics.RecordResolution("inactive")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			default:
				metrics.RecordResolution("error")
				m.logger.Error("Failed to resolve tenant", err, zap.String("host", host))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tenant"})
			}
			return
		}

		if tenant == nil {
			metrics.RecordResolution("none")
			m.logger.Debug("Request without tenant subdomain",
				zap.String("host", host),
				zap.String("path", c.Request.URL.Path))
			c.Next()
			return
		}

		metrics.RecordResolution("resolved")
		c.Set(string(utils.ResolvedTenantKey), tenant)
		c.Set(string(utils.ResolvedTenantIDKey), tenant.ID)
		c.Next()
	}
}
