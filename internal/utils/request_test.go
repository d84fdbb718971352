package utils

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walatech/tenant-core/internal/domain"
)

func TestRequestCtx_CopiesGinKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	tenant := &domain.Tenant{ID: "t1", Subdomain: "acme"}
	c.Set(string(ResolvedTenantKey), tenant)
	c.Set(string(ClaimsKey), jwt.MapClaims{"tenant_id": "t2"})
	c.Set(string(SuperAdminOverrideKey), true)

	ctx := RequestCtx(c)

	resolved, ok := GetResolvedTenant(ctx)
	require.True(t, ok)
	assert.Same(t, tenant, resolved)
	tenantID, err := GetEffectiveTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", tenantID)
	assert.True(t, GetSuperAdminOverride(ctx))
}

func TestGetEffectiveTenantID_FallsBackToClaim(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsKey, jwt.MapClaims{"tenant_id": "t2"})

	tenantID, err := GetEffectiveTenantID(ctx)

	require.NoError(t, err)
	assert.Equal(t, "t2", tenantID)
}

func TestGetEffectiveTenantID_None(t *testing.T) {
	_, err := GetEffectiveTenantID(context.Background())
	assert.ErrorIs(t, err, ErrNoTenantInContext)
}

func TestUserFromClaims(t *testing.T) {
	user := UserFromClaims(jwt.MapClaims{
		"user_id":        "u1",
		"tenant_id":      "t1",
		"email":          "ops@walatech.io",
		"roles":          []any{"admin", 7, "user"},
		"is_super_admin": true,
	})

	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "t1", user.TenantID)
	assert.Equal(t, []string{"admin", "user"}, user.Roles)
	assert.True(t, user.IsSuperAdmin)
	assert.True(t, user.HasRole(domain.RoleAdmin))
}

func TestUserFromClaims_MissingFlag(t *testing.T) {
	user := UserFromClaims(jwt.MapClaims{"is_super_admin": "yes"})
	assert.False(t, user.IsSuperAdmin)
	assert.Empty(t, user.Roles)
}
