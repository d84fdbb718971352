package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walatech/tenant-core/internal/api/dto"
	"github.com/walatech/tenant-core/internal/settings"
	"github.com/walatech/tenant-core/internal/utils"
)

//go:generate mockery --name SettingsService --output ../mocks
type SettingsService interface {
	Get(ctx context.Context, tenantID string) (settings.Document, error)
	Update(ctx context.Context, tenantID string, partial settings.Document) (settings.Document, error)
	Reset(ctx context.Context, tenantID string) (settings.Document, error)
	GetByPath(ctx context.Context, tenantID, path string) (any, bool, error)
	SetByPath(ctx context.Context, tenantID, path string, value any) (settings.Document, error)
}

// SettingsHandler serves both the tenant-scoped routes, where the tenant
// comes from the request, and the admin routes addressed by :id.
type SettingsHandler struct {
	*BaseHandler
	service SettingsService
}

func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetSettings godoc
// @Summary Get tenant settings
// @Description Return the full settings document. Legacy feature flags are returned in their current form.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SettingsResponse
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenant-settings [get]
// @Router /admin/tenants/{id}/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ctx, tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	doc, err := h.service.Get(ctx, tenantID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettingsResponse{TenantID: tenantID, Settings: doc})
}

// UpdateSettings godoc
// @Summary Update tenant settings
// @Description Deep merge a partial document into the stored settings. Objects merge, everything else replaces.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateSettingsRequest true "Partial settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenant-settings [put]
// @Router /admin/tenants/{id}/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	ctx, tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	doc, err := h.service.Update(ctx, tenantID, req.Settings)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettingsResponse{TenantID: tenantID, Settings: doc})
}

// ResetSettings godoc
// @Summary Reset tenant settings
// @Description Replace the settings with the defaults
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SettingsResponse
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenant-settings/reset [post]
// @Router /admin/tenants/{id}/settings/reset [post]
func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	ctx, tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	doc, err := h.service.Reset(ctx, tenantID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettingsResponse{TenantID: tenantID, Settings: doc})
}

// GetSetting godoc
// @Summary Get one setting
// @Description Read the value at a dot path such as branding.primaryColor. The value is null when the path is not set.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Param path path string true "Dot path"
// @Success 200 {object} dto.SettingValueResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenant-settings/setting/{path} [get]
// @Router /admin/tenants/{id}/settings/setting/{path} [get]
func (h *SettingsHandler) GetSetting(c *gin.Context) {
	ctx, tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	path := c.Param("path")
	// A path that is not set reads as null
	value, _, err := h.service.GetByPath(ctx, tenantID, path)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettingValueResponse{Path: path, Value: value})
}

// SetSetting godoc
// @Summary Set one setting
// @Description Write a value at a dot path, creating missing objects on the way
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param path path string true "Dot path"
// @Param body body dto.SetSettingRequest true "Value"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /tenant-settings/setting/{path} [put]
// @Router /admin/tenants/{id}/settings/setting/{path} [put]
func (h *SettingsHandler) SetSetting(c *gin.Context) {
	ctx, tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req dto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}
	if len(req.Value) == 0 {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "value is required"})
		return
	}

	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	doc, err := h.service.SetByPath(ctx, tenantID, c.Param("path"), value)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SettingsResponse{TenantID: tenantID, Settings: doc})
}

// tenant picks the tenant a request addresses: the :id parameter on admin
// routes, otherwise the resolved tenant or the token's tenant.
func (h *SettingsHandler) tenant(c *gin.Context) (context.Context, string, bool) {
	ctx := h.RequestCtx(c)
	if id := c.Param("id"); id != "" {
		return ctx, id, true
	}

	tenantID, err := utils.GetEffectiveTenantID(ctx)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "tenant could not be determined from host or token"})
		return ctx, "", false
	}
	return ctx, tenantID, true
}
