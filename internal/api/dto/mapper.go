package dto

import (
	"time"

	"github.com/walatech/tenant-core/internal/domain"
)

// FromTenant converts a Tenant domain model to a TenantResponse DTO. Days
// until hard deletion are computed against now.
func FromTenant(tenant *domain.Tenant, now time.Time) TenantResponse {
	resp := TenantResponse{
		ID:                    tenant.ID,
		Name:                  tenant.Name,
		Subdomain:             tenant.Subdomain,
		Status:                string(tenant.Status),
		Plan:                  string(tenant.Plan),
		DeletedAt:             tenant.DeletedAt,
		HardDeleteScheduledAt: tenant.HardDeleteScheduledAt,
		CreatedAt:             tenant.CreatedAt,
		UpdatedAt:             tenant.UpdatedAt,
	}
	if days, ok := tenant.DaysUntilHardDeletion(now); ok {
		resp.DaysUntilHardDeletion = &days
	}
	return resp
}

func FromTenants(tenants []domain.Tenant, now time.Time) []TenantResponse {
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = FromTenant(&tenants[i], now)
	}
	return responses
}

func FromSweepReport(report domain.SweepReport) SweepReportResponse {
	resp := SweepReportResponse{
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Candidates: report.Candidates,
		Deleted:    append([]string{}, report.Deleted...),
		Failures:   make([]SweepFailureResponse, 0, len(report.Failures)),
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, SweepFailureResponse{TenantID: f.TenantID, Error: f.Err.Error()})
	}
	if report.Err != nil {
		resp.Error = report.Err.Error()
	}
	for _, f := range report.NotifyFailures {
		resp.NotifyFailures = append(resp.NotifyFailures, SweepFailureResponse{TenantID: f.TenantID, Error: f.Err.Error()})
	}
	return resp
}
