package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/utils"
)

func TestSuperAdminChecker_IsSuperAdmin(t *testing.T) {
	checker := NewSuperAdminChecker(config.SuperAdminConfig{})
	reserved := &domain.Tenant{Subdomain: "walatech"}
	other := &domain.Tenant{Subdomain: "acme"}

	tests := []struct {
		name     string
		user     *domain.User
		override bool
		resolved *domain.Tenant
		want     bool
	}{
		{"no signals", nil, false, nil, false},
		{"plain user on tenant", &domain.User{ID: "u1"}, false, other, false},
		{"user flag", &domain.User{IsSuperAdmin: true}, false, nil, true},
		{"override", nil, true, nil, true},
		{"reserved subdomain", nil, false, reserved, true},
		{"all signals", &domain.User{IsSuperAdmin: true}, true, reserved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checker.IsSuperAdmin(tt.user, tt.override, tt.resolved))
		})
	}
}

func TestSuperAdminChecker_ConfiguredSubdomain(t *testing.T) {
	checker := NewSuperAdminChecker(config.SuperAdminConfig{Subdomain: "Control"})

	assert.True(t, checker.IsSuperAdmin(nil, false, &domain.Tenant{Subdomain: "control"}))
	assert.False(t, checker.IsSuperAdmin(nil, false, &domain.Tenant{Subdomain: "walatech"}))
}

func TestSuperAdminChecker_Check(t *testing.T) {
	checker := NewSuperAdminChecker(config.SuperAdminConfig{Subdomain: "walatech"})

	assert.ErrorIs(t, checker.Check(context.Background()), ErrForbidden)

	ctx := context.WithValue(context.Background(), utils.ClaimsKey, jwt.MapClaims{"is_super_admin": true})
	assert.NoError(t, checker.Check(ctx))

	ctx = context.WithValue(context.Background(), utils.SuperAdminOverrideKey, true)
	assert.NoError(t, checker.Check(ctx))

	ctx = context.WithValue(context.Background(), utils.ResolvedTenantKey, &domain.Tenant{Subdomain: "walatech"})
	assert.NoError(t, checker.Check(ctx))
}
