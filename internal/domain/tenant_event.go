package domain

import "time"

type TenantEventType string

const (
	EventTenantCreated     TenantEventType = "tenant.created"
	EventTenantActivated   TenantEventType = "tenant.activated"
	EventTenantSuspended   TenantEventType = "tenant.suspended"
	EventTenantSoftDeleted TenantEventType = "tenant.soft_deleted"
	EventTenantRestored    TenantEventType = "tenant.restored"
	EventTenantHardDeleted TenantEventType = "tenant.hard_deleted"
	EventSettingsUpdated   TenantEventType = "tenant.settings_updated"
	EventSettingsReset     TenantEventType = "tenant.settings_reset"
)

// TenantEvent is published after a tenant changed state.
type TenantEvent struct {
	Type       TenantEventType `json:"type"`
	TenantID   string          `json:"tenant_id"`
	Subdomain  string          `json:"subdomain"`
	Status     TenantStatus    `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewTenantEvent(eventType TenantEventType, tenant *Tenant, at time.Time) TenantEvent {
	return TenantEvent{
		Type:       eventType,
		TenantID:   tenant.ID,
		Subdomain:  tenant.Subdomain,
		Status:     tenant.Status,
		OccurredAt: at,
	}
}
