package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/walatech/tenant-core/internal/domain"
)

// RequestCtx returns the request context with every gin key copied in
// under a ContextKey, so the typed accessors in this package can read them.
func RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		ctx = context.WithValue(ctx, ContextKey(k), v)
	}
	return ctx
}

// GetUserFromContext builds the authenticated user from the token claims.
func GetUserFromContext(c context.Context) (*domain.User, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return nil, err
	}
	return UserFromClaims(claims), nil
}

func UserFromClaims(claims jwt.MapClaims) *domain.User {
	user := &domain.User{
		ID:       stringClaim(claims, "user_id"),
		TenantID: stringClaim(claims, "tenant_id"),
		Email:    stringClaim(claims, "email"),
	}
	if roles, ok := claims["roles"].([]any); ok {
		for _, role := range roles {
			if s, ok := role.(string); ok {
				user.Roles = append(user.Roles, s)
			}
		}
	}
	user.IsSuperAdmin, _ = claims["is_super_admin"].(bool)
	return user
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
