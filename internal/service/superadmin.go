package service

import (
	"context"
	"strings"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/utils"
)

// SuperAdminChecker decides whether a request may use cross-tenant
// administration.
type SuperAdminChecker struct {
	reservedSubdomain string
}

func NewSuperAdminChecker(cfg config.SuperAdminConfig) *SuperAdminChecker {
	subdomain := strings.ToLower(strings.TrimSpace(cfg.Subdomain))
	if subdomain == "" {
		subdomain = config.DefaultSuperAdminSubdomain
	}
	return &SuperAdminChecker{reservedSubdomain: subdomain}
}

// IsSuperAdmin holds when the user carries the super-admin flag, the
// override is set, or the resolved tenant is the reserved subdomain.
func (c *SuperAdminChecker) IsSuperAdmin(user *domain.User, override bool, resolved *domain.Tenant) bool {
	if user != nil && user.IsSuperAdmin {
		return true
	}
	if override {
		return true
	}
	return resolved != nil && strings.EqualFold(resolved.Subdomain, c.reservedSubdomain)
}

// Check reads the three signals from ctx and returns ErrForbidden unless
// one of them holds.
func (c *SuperAdminChecker) Check(ctx context.Context) error {
	user, _ := utils.GetUserFromContext(ctx)
	resolved, _ := utils.GetResolvedTenant(ctx)
	if c.IsSuperAdmin(user, utils.GetSuperAdminOverride(ctx), resolved) {
		return nil
	}
	return ErrForbidden
}
