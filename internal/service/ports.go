package service

import (
	"context"

	"github.com/walatech/tenant-core/internal/domain"
)

// EventPublisher fans tenant events out to other processes.
//
//go:generate mockery --name EventPublisher --output ../mocks
type EventPublisher interface {
	Publish(ctx context.Context, event domain.TenantEvent) error
}

// TenantArchiver stores a snapshot of a tenant before it is purged and
// returns the location it was written to.
//
//go:generate mockery --name TenantArchiver --output ../mocks
type TenantArchiver interface {
	Archive(ctx context.Context, tenant *domain.Tenant) (string, error)
}

// PurgeNotifier tells downstream modules that a tenant's data can be purged.
//
//go:generate mockery --name PurgeNotifier --output ../mocks
type PurgeNotifier interface {
	NotifyTenantPurged(ctx context.Context, tenant *domain.Tenant) error
}
