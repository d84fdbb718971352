package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/repository"
	"github.com/walatech/tenant-core/internal/utils"
	"github.com/walatech/tenant-core/pkg/logger"
)

// TenantResolver maps a request host to its tenant.
type TenantResolver struct {
	repo   repository.Repository
	logger *logger.Logger
}

func NewTenantResolver(repo repository.Repository, logger *logger.Logger) *TenantResolver {
	return &TenantResolver{repo: repo, logger: logger}
}

// Resolve returns the tenant addressed by host. A host without a subdomain
// yields (nil, nil). Unknown subdomains fail with ErrTenantNotFound and
// tenants whose status is not active with ErrTenantInactive.
func (r *TenantResolver) Resolve(ctx context.Context, host string) (*domain.Tenant, error) {
	subdomain := utils.ExtractSubdomain(host)
	if subdomain == "" {
		r.logger.Debug("No subdomain in host", zap.String("host", host))
		return nil, nil
	}

	tenant, err := r.repo.Tenant().GetBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, subdomain)
		}
		return nil, err
	}

	if !tenant.IsActive() {
		return nil, fmt.Errorf("%w: %s is %s", ErrTenantInactive, subdomain, tenant.Status)
	}

	return tenant, nil
}
