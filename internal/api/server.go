package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walatech/tenant-core/internal/api/dto"
	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/middleware"
	"github.com/walatech/tenant-core/pkg/logger"
)

type Server struct {
	tenant     *TenantHandler
	settings   *SettingsHandler
	websocket  *WebSocketHandler
	auth       *middleware.AuthMiddleware
	tenancy    *middleware.TenantMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
	config     *config.Config
}

func NewServer(
	tenantService TenantService,
	settingsService SettingsService,
	sweeper Sweeper,
	auth *middleware.AuthMiddleware,
	tenancy *middleware.TenantMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	config *config.Config,
	logger *logger.Logger,
	events EventSubscriber,
) *Server {
	return &Server{
		tenant:     NewTenantHandler(tenantService, sweeper),
		settings:   NewSettingsHandler(settingsService),
		websocket:  NewWebSocketHandler(logger, events),
		auth:       auth,
		tenancy:    tenancy,
		rateLimit:  rateLimit,
		validation: validation,
		config:     config,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	// Tenant resolution gates every versioned route
	api.Use(s.tenancy.ResolveTenant())

	api.Use(s.validation.ValidateRequestSize(s.config.MaxRequestBodyBytes))
	api.Use(s.validation.ValidateContentType("application/json"))

	if s.rateLimit != nil {
		api.Use(s.rateLimit.GlobalRateLimit(s.config.GlobalRateLimit))
	}

	// The tenant check runs before the limiter so the limit key is the
	// caller's own tenant
	tenantScoped := []gin.HandlerFunc{s.auth.JWTAuth(), s.auth.RequireTenantMatch()}
	if s.rateLimit != nil {
		tenantScoped = append(tenantScoped, s.rateLimit.TenantRateLimit())
	}

	{
		settings := api.Group("/tenant-settings", tenantScoped...)
		{
			read := s.auth.RequireRole(domain.RoleAdmin, domain.RoleUser)
			write := s.auth.RequireRole(domain.RoleAdmin)

			settings.GET("", read, s.settings.GetSettings)
			settings.PUT("", write, s.settings.UpdateSettings)
			settings.POST("/reset", write, s.settings.ResetSettings)
			settings.GET("/setting/:path", read, s.settings.GetSetting)
			settings.PUT("/setting/:path", write, s.settings.SetSetting)
		}

		admin := api.Group("/admin/tenants", s.auth.JWTAuth(), s.auth.RequireSuperAdmin())
		{
			admin.POST("", s.tenant.CreateTenant)
			admin.GET("", s.tenant.ListTenants)
			admin.GET("/eligible-for-deletion", s.tenant.ListEligibleForDeletion)
			admin.POST("/sweep", s.tenant.RunSweep)
			admin.GET("/events/stream", s.websocket.HandleWebSocket)

			admin.GET("/:id", s.tenant.GetTenant)
			admin.POST("/:id/activate", s.tenant.ActivateTenant)
			admin.POST("/:id/suspend", s.tenant.SuspendTenant)
			admin.POST("/:id/restore", s.tenant.RestoreTenant)
			admin.DELETE("/:id", s.tenant.SoftDeleteTenant)
			admin.DELETE("/:id/permanent", s.tenant.HardDeleteTenant)

			admin.GET("/:id/settings", s.settings.GetSettings)
			admin.PUT("/:id/settings", s.settings.UpdateSettings)
			admin.POST("/:id/settings/reset", s.settings.ResetSettings)
			admin.GET("/:id/settings/setting/:path", s.settings.GetSetting)
			admin.PUT("/:id/settings/setting/:path", s.settings.SetSetting)
		}
	}
}

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// StartWebSocketHub starts the WebSocket hub for streaming tenant events
func (s *Server) StartWebSocketHub() {
	go s.websocket.Start()
}

// StopWebSocketHub disconnects all clients and drops the event subscription
func (s *Server) StopWebSocketHub() {
	s.websocket.Stop()
}
