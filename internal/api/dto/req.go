package dto

import (
	"encoding/json"
)

type CreateTenantRequest struct {
	Name      string `json:"name" binding:"required" example:"Acme Manufacturing"`
	Subdomain string `json:"subdomain" binding:"required" example:"acme"`
	Status    string `json:"status,omitempty" example:"trial"`
	Plan      string `json:"plan,omitempty" example:"basic"`
}

type ListTenantsRequest struct {
	Status string `form:"status" example:"active"`
	Plan   string `form:"plan" example:"basic"`
	Limit  int    `form:"limit" example:"50"`
	Offset int    `form:"offset" example:"0"`
}

// UpdateSettingsRequest carries a partial settings document that is deep
// merged into the stored one.
type UpdateSettingsRequest struct {
	Settings map[string]any `json:"settings" binding:"required" swaggertype:"object"`
}

// SetSettingRequest carries the value written at a dot path. The value may
// be any JSON value including null.
type SetSettingRequest struct {
	Value json.RawMessage `json:"value" swaggertype:"string" example:"\"#ff8800\""`
}
