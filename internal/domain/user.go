package domain

// User is the authenticated caller as described by its access token.
type User struct {
	ID           string   `json:"id"`
	TenantID     string   `json:"tenant_id"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
	IsSuperAdmin bool     `json:"is_super_admin"`
}

func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	return HasRole(u.Roles, role)
}
