package dto

import (
	"time"
)

// TenantResponse represents a tenant in admin responses
type TenantResponse struct {
	ID                    string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name                  string     `json:"name" example:"Acme Manufacturing"`
	Subdomain             string     `json:"subdomain" example:"acme"`
	Status                string     `json:"status" example:"active"`
	Plan                  string     `json:"plan" example:"basic"`
	DeletedAt             *time.Time `json:"deleted_at,omitempty" example:"2025-07-17T21:20:48Z"`
	HardDeleteScheduledAt *time.Time `json:"hard_delete_scheduled_at,omitempty" example:"2025-08-16T21:20:48Z"`
	DaysUntilHardDeletion *int       `json:"days_until_hard_deletion,omitempty" example:"30"`
	CreatedAt             time.Time  `json:"created_at" example:"2025-07-17T21:20:48Z"`
	UpdatedAt             time.Time  `json:"updated_at" example:"2025-07-17T21:20:48Z"`
}

// HardDeleteResponse reports the outcome of a permanent deletion
type HardDeleteResponse struct {
	ID      string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Deleted bool   `json:"deleted" example:"true"`
}

// SettingsResponse wraps a full settings document
type SettingsResponse struct {
	TenantID string         `json:"tenant_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Settings map[string]any `json:"settings" swaggertype:"object"`
}

// SettingValueResponse is the value found at a settings path
type SettingValueResponse struct {
	Path  string `json:"path" example:"branding.primaryColor"`
	Value any    `json:"value" swaggertype:"string" example:"#3b82f6"`
}

// SweepFailureResponse describes a tenant the sweeper could not delete
type SweepFailureResponse struct {
	TenantID string `json:"tenant_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Error    string `json:"error" example:"failed to archive tenant"`
}

// SweepReportResponse summarizes one cleanup sweep
type SweepReportResponse struct {
	StartedAt  time.Time              `json:"started_at" example:"2025-07-17T02:00:00Z"`
	FinishedAt time.Time              `json:"finished_at" example:"2025-07-17T02:00:03Z"`
	Candidates int                    `json:"candidates" example:"3"`
	Deleted    []string               `json:"deleted"`
	Failures   []SweepFailureResponse `json:"failures"`
	// NotifyFailures lists deleted tenants whose purge notification failed
	NotifyFailures []SweepFailureResponse `json:"notify_failures,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
