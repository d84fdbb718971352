package repository

import (
	"context"
	"errors"
	"time"

	"github.com/walatech/tenant-core/internal/domain"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateSubdomain = errors.New("subdomain already in use")
)

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	UpdateSettings(ctx context.Context, id string, settings *string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error)
	ListEligibleForHardDeletion(ctx context.Context, now time.Time) ([]domain.Tenant, error)
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	Tenant() TenantRepository
}
