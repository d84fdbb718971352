package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/walatech/tenant-core/internal/domain"
)

type ContextKey string

const (
	ClaimsKey             ContextKey = "claims"
	TenantIDKey           ContextKey = "tenant_id"
	ResolvedTenantKey     ContextKey = "resolved_tenant"
	ResolvedTenantIDKey   ContextKey = "resolved_tenant_id"
	SuperAdminOverrideKey ContextKey = "super_admin_override"
)

var (
	ErrNoClaimsInContext   = errors.New("no claims found in context")
	ErrInvalidClaimsType   = errors.New("invalid claims type")
	ErrNoTenantIDInClaims  = errors.New("no tenant_id found in claims")
	ErrInvalidTenantIDType = errors.New("tenant_id must be a string")
	ErrNoTenantInContext   = errors.New("no tenant in request context")
)

func GetClaimsFromContext(c context.Context) (jwt.MapClaims, error) {
	claims, exists := c.Value(ClaimsKey).(jwt.MapClaims)
	if !exists {
		return nil, ErrNoClaimsInContext
	}
	return claims, nil
}

func GetTenantIDFromContext(c context.Context) (string, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return "", err
	}

	tenantID, exists := claims[string(TenantIDKey)]
	if !exists {
		return "", ErrNoTenantIDInClaims
	}

	tenantIDStr, ok := tenantID.(string)
	if !ok {
		return "", ErrInvalidTenantIDType
	}

	return tenantIDStr, nil
}

// GetResolvedTenant returns the tenant attached by the subdomain resolver, if any.
func GetResolvedTenant(c context.Context) (*domain.Tenant, bool) {
	tenant, ok := c.Value(ResolvedTenantKey).(*domain.Tenant)
	return tenant, ok && tenant != nil
}

// GetEffectiveTenantID prefers the tenant resolved from the host and falls
// back to the tenant_id claim of the access token.
func GetEffectiveTenantID(c context.Context) (string, error) {
	if tenant, ok := GetResolvedTenant(c); ok {
		return tenant.ID, nil
	}
	tenantID, err := GetTenantIDFromContext(c)
	if err != nil || tenantID == "" {
		return "", ErrNoTenantInContext
	}
	return tenantID, nil
}

func GetSuperAdminOverride(c context.Context) bool {
	override, _ := c.Value(SuperAdminOverrideKey).(bool)
	return override
}
