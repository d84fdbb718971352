package service

import (
	"errors"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/settings"
)

var (
	// Tenant errors
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrTenantInactive       = errors.New("tenant is not active")
	ErrConflictingSubdomain = errors.New("subdomain is already taken")
	ErrInvalidSubdomain     = errors.New("subdomain must be 3-100 lowercase letters, digits or hyphens")
	ErrInvalidTenant        = errors.New("invalid tenant")

	ErrInvalidLifecycleTransition = domain.ErrInvalidLifecycleTransition

	// Settings errors
	ErrInvalidSettings = settings.ErrInvalidSettings

	// Authorization errors
	ErrForbidden = errors.New("forbidden")
)
