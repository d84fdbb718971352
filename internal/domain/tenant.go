package domain

import (
	"regexp"
	"time"
)

type TenantStatus string

const (
	TenantStatusTrial       TenantStatus = "trial"
	TenantStatusActive      TenantStatus = "active"
	TenantStatusSuspended   TenantStatus = "suspended"
	TenantStatusSoftDeleted TenantStatus = "soft-deleted"
)

type TenantPlan string

const (
	TenantPlanBasic        TenantPlan = "basic"
	TenantPlanProfessional TenantPlan = "professional"
	TenantPlanEnterprise   TenantPlan = "enterprise"
)

func (p TenantPlan) IsValid() bool {
	switch p {
	case TenantPlanBasic, TenantPlanProfessional, TenantPlanEnterprise:
		return true
	}
	return false
}

var subdomainPattern = regexp.MustCompile(`^[a-z0-9-]{3,100}$`)

// IsValidSubdomain reports whether s is 3-100 lowercase alphanumerics or hyphens.
func IsValidSubdomain(s string) bool {
	return subdomainPattern.MatchString(s)
}

// Tenant is the tenancy root. Settings holds the serialized settings
// document; nil means defaults apply.
type Tenant struct {
	ID                    string       `gorm:"primaryKey;type:uuid" json:"id"`
	Name                  string       `gorm:"type:text;not null" json:"name"`
	Subdomain             string       `gorm:"type:varchar(100);not null;uniqueIndex" json:"subdomain"`
	Status                TenantStatus `gorm:"type:text;not null;default:'trial'" json:"status"`
	Plan                  TenantPlan   `gorm:"type:text;not null;default:'basic'" json:"plan"`
	Settings              *string      `gorm:"type:text" json:"-"`
	StatusBeforeDeletion  TenantStatus `gorm:"type:text" json:"-"`
	DeletedAt             *time.Time   `gorm:"type:timestamp with time zone" json:"deleted_at,omitempty"`
	HardDeleteScheduledAt *time.Time   `gorm:"type:timestamp with time zone;index" json:"hard_delete_scheduled_at,omitempty"`
	CreatedAt             time.Time    `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time    `gorm:"type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

func (t *Tenant) IsSoftDeleted() bool {
	return t.Status == TenantStatusSoftDeleted
}

// TenantFilter narrows tenant listings. Zero values mean "no constraint".
type TenantFilter struct {
	Status TenantStatus `json:"status"`
	Plan   TenantPlan   `json:"plan"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
