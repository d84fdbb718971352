package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/utils"
)

// SuperAdminGuard returns an error when the request is not a super admin.
type SuperAdminGuard interface {
	Check(ctx context.Context) error
}

type AuthMiddleware struct {
	config *config.Config
	guard  SuperAdminGuard
}

func NewAuthMiddleware(config *config.Config, guard SuperAdminGuard) *AuthMiddleware {
	return &AuthMiddleware{
		config: config,
		guard:  guard,
	}
}

func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := bearerToken[1]
		claims := jwt.MapClaims{}

		_, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (any, error) {
			return []byte(m.config.JWTSecretKey), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Set claims in context
		c.Set(string(utils.TenantIDKey), claims["tenant_id"])
		c.Set(string(utils.ClaimsKey), claims)
		c.Next()
	}
}

// RequireRole middleware checks if the user has one of the given roles
func (m *AuthMiddleware) RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get(string(utils.ClaimsKey))
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authentication found"})
			return
		}

		claimsMap, ok := claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Invalid claims type"})
			return
		}

		user := utils.UserFromClaims(claimsMap)
		if !user.IsSuperAdmin && !domain.HasAnyRole(user.Roles, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

// RequireTenantMatch rejects a token issued for another tenant than the one
// resolved from the host. Super admins may address any tenant. Requests
// without a resolved tenant fall back to the token's tenant and pass.
// It must run after JWTAuth and tenant resolution.
func (m *AuthMiddleware) RequireTenantMatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := utils.RequestCtx(c)
		resolved, ok := utils.GetResolvedTenant(ctx)
		if !ok {
			c.Next()
			return
		}

		tokenTenantID, _ := utils.GetTenantIDFromContext(ctx)
		if tokenTenantID == resolved.ID {
			c.Next()
			return
		}
		if m.guard != nil && m.guard.Check(ctx) == nil {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is not valid for this tenant"})
	}
}

// RequireSuperAdmin admits the request only when the super-admin check
// passes. It must run after JWTAuth and tenant resolution.
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.guard.Check(utils.RequestCtx(c)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Super admin access required"})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) GenerateToken(userID, tenantID string, roles []string, superAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":        userID,
		"tenant_id":      tenantID,
		"roles":          roles,
		"is_super_admin": superAdmin,
		"exp":            time.Now().Add(time.Duration(m.config.JWTExpirationHours) * time.Hour).Unix(),
		"iat":            time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.JWTSecretKey))
}
