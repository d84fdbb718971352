package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/walatech/tenant-core/internal/api/dto"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/service"
)

//go:generate mockery --name TenantService --output ../mocks
type TenantService interface {
	Create(ctx context.Context, req dto.CreateTenantRequest) (dto.TenantResponse, error)
	GetByID(ctx context.Context, id string) (dto.TenantResponse, error)
	List(ctx context.Context, filter domain.TenantFilter) ([]dto.TenantResponse, error)
	Activate(ctx context.Context, id string) (dto.TenantResponse, error)
	Suspend(ctx context.Context, id string) (dto.TenantResponse, error)
	SoftDelete(ctx context.Context, id string) (dto.TenantResponse, error)
	Restore(ctx context.Context, id string) (dto.TenantResponse, error)
	HardDelete(ctx context.Context, id string) (service.HardDeleteResult, error)
	ListEligibleForHardDeletion(ctx context.Context) ([]domain.Tenant, error)
	Now() time.Time
}

// Sweeper runs one cleanup sweep on demand.
type Sweeper interface {
	Sweep(ctx context.Context) domain.SweepReport
}

type TenantHandler struct {
	*BaseHandler
	service TenantService
	sweeper Sweeper
}

func NewTenantHandler(service TenantService, sweeper Sweeper) *TenantHandler {
	return &TenantHandler{service: service, sweeper: sweeper}
}

// CreateTenant godoc
// @Summary Create a new tenant
// @Description Provision a tenant. Status defaults to trial and plan to basic.
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateTenantRequest true "Tenant object"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router /admin/tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenant, err := h.service.Create(h.RequestCtx(c), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// ListTenants godoc
// @Summary List tenants
// @Description List tenants, optionally filtered by status and plan
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param status query string false "Tenant status"
// @Param plan query string false "Tenant plan"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.TenantResponse
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router /admin/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	var req dto.ListTenantsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	tenants, err := h.service.List(h.RequestCtx(c), domain.TenantFilter{
		Status: domain.TenantStatus(req.Status),
		Plan:   domain.TenantPlan(req.Plan),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenants)
}

// GetTenant godoc
// @Summary Get a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Router /admin/tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.service.GetByID(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// ActivateTenant godoc
// @Summary Activate a tenant
// @Description Move a tenant to active. Activating an active tenant is a no-op.
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Router /admin/tenants/{id}/activate [post]
func (h *TenantHandler) ActivateTenant(c *gin.Context) {
	h.transition(c, h.service.Activate)
}

// SuspendTenant godoc
// @Summary Suspend a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Router /admin/tenants/{id}/suspend [post]
func (h *TenantHandler) SuspendTenant(c *gin.Context) {
	h.transition(c, h.service.Suspend)
}

// SoftDeleteTenant godoc
// @Summary Soft delete a tenant
// @Description Mark a tenant deleted and schedule its permanent removal after the retention window
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /admin/tenants/{id} [delete]
func (h *TenantHandler) SoftDeleteTenant(c *gin.Context) {
	h.transition(c, h.service.SoftDelete)
}

// RestoreTenant godoc
// @Summary Restore a soft-deleted tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /admin/tenants/{id}/restore [post]
func (h *TenantHandler) RestoreTenant(c *gin.Context) {
	h.transition(c, h.service.Restore)
}

// HardDeleteTenant godoc
// @Summary Permanently delete a tenant
// @Description Remove a soft-deleted tenant whose retention window has elapsed. A missing tenant reports deleted=false.
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} dto.HardDeleteResponse
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router /admin/tenants/{id}/permanent [delete]
func (h *TenantHandler) HardDeleteTenant(c *gin.Context) {
	id := c.Param("id")
	result, err := h.service.HardDelete(h.RequestCtx(c), id)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HardDeleteResponse{ID: id, Deleted: result.Deleted})
}

// ListEligibleForDeletion godoc
// @Summary List tenants due for permanent deletion
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TenantResponse
// @Failure 500 {object} dto.Error
// @Router /admin/tenants/eligible-for-deletion [get]
func (h *TenantHandler) ListEligibleForDeletion(c *gin.Context) {
	tenants, err := h.service.ListEligibleForHardDeletion(h.RequestCtx(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTenants(tenants, h.service.Now()))
}

// RunSweep godoc
// @Summary Run the cleanup sweep now
// @Description Hard-delete every eligible tenant and report per-tenant failures
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SweepReportResponse
// @Failure 503 {object} dto.Error
// @Router /admin/tenants/sweep [post]
func (h *TenantHandler) RunSweep(c *gin.Context) {
	if h.sweeper == nil {
		c.JSON(http.StatusServiceUnavailable, dto.Error{Error: "cleanup sweeper is not configured"})
		return
	}

	report := h.sweeper.Sweep(h.RequestCtx(c))
	c.JSON(http.StatusOK, dto.FromSweepReport(report))
}

func (h *TenantHandler) transition(c *gin.Context, apply func(ctx context.Context, id string) (dto.TenantResponse, error)) {
	tenant, err := apply(h.RequestCtx(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}
