package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/walatech/tenant-core/internal/api/dto"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/metrics"
	"github.com/walatech/tenant-core/internal/repository"
	"github.com/walatech/tenant-core/pkg/logger"
)

// HardDeleteResult describes what a permanent deletion did.
type HardDeleteResult struct {
	TenantID   string
	Deleted    bool
	ArchiveKey string
	// NotifyErr is set when the purge notification failed after the row
	// was already removed.
	NotifyErr error
}

type TenantService struct {
	repo      repository.Repository
	logger    *logger.Logger
	retention time.Duration
	now       func() time.Time

	publisher EventPublisher
	archiver  TenantArchiver
	notifier  PurgeNotifier
}

func NewTenantService(repo repository.Repository, logger *logger.Logger, retention time.Duration) *TenantService {
	return &TenantService{
		repo:      repo,
		logger:    logger,
		retention: retention,
		now:       time.Now,
	}
}

func (s *TenantService) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

func (s *TenantService) SetArchiver(archiver TenantArchiver) {
	s.archiver = archiver
}

func (s *TenantService) SetPurgeNotifier(notifier PurgeNotifier) {
	s.notifier = notifier
}

// SetClock replaces the time source.
func (s *TenantService) SetClock(now func() time.Time) {
	s.now = now
}

// Now returns the service clock's current time.
func (s *TenantService) Now() time.Time {
	return s.now()
}

func (s *TenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (dto.TenantResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return dto.TenantResponse{}, fmt.Errorf("%w: name is required", ErrInvalidTenant)
	}

	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))
	if !domain.IsValidSubdomain(subdomain) {
		return dto.TenantResponse{}, ErrInvalidSubdomain
	}

	status := domain.TenantStatusTrial
	if req.Status != "" {
		status = domain.TenantStatus(req.Status)
	}
	if !domain.IsValidInitialStatus(status) {
		return dto.TenantResponse{}, &domain.TransitionError{From: status, Action: domain.ActionCreate,
			Reason: "tenants can only be created as trial or active"}
	}

	plan := domain.TenantPlanBasic
	if req.Plan != "" {
		plan = domain.TenantPlan(strings.ToLower(req.Plan))
	}
	if !plan.IsValid() {
		return dto.TenantResponse{}, fmt.Errorf("%w: unknown plan %q", ErrInvalidTenant, req.Plan)
	}

	existing, err := s.repo.Tenant().GetBySubdomain(ctx, subdomain)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return dto.TenantResponse{}, err
	}
	if existing != nil {
		return dto.TenantResponse{}, ErrConflictingSubdomain
	}

	now := s.now()
	tenant := &domain.Tenant{
		Name:      name,
		Subdomain: subdomain,
		Status:    status,
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}

	createdTenant, err := s.repo.Tenant().Create(ctx, tenant)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSubdomain) {
			return dto.TenantResponse{}, ErrConflictingSubdomain
		}
		return dto.TenantResponse{}, err
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", createdTenant.ID),
		zap.String("subdomain", createdTenant.Subdomain),
		zap.String("status", string(createdTenant.Status)))
	s.publish(ctx, domain.EventTenantCreated, createdTenant)

	return dto.FromTenant(createdTenant, now), nil
}

func (s *TenantService) GetByID(ctx context.Context, id string) (dto.TenantResponse, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return dto.TenantResponse{}, err
	}
	return dto.FromTenant(tenant, s.now()), nil
}

func (s *TenantService) List(ctx context.Context, filter domain.TenantFilter) ([]dto.TenantResponse, error) {
	tenants, err := s.repo.Tenant().List(ctx, filter)
	if err != nil {
		return []dto.TenantResponse{}, err
	}
	return dto.FromTenants(tenants, s.now()), nil
}

// Activate is idempotent: activating an active tenant changes nothing.
func (s *TenantService) Activate(ctx context.Context, id string) (dto.TenantResponse, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return dto.TenantResponse{}, err
	}

	now := s.now()
	if !tenant.Activate(now) {
		return dto.FromTenant(tenant, now), nil
	}
	if err := s.save(ctx, tenant, domain.EventTenantActivated); err != nil {
		return dto.TenantResponse{}, err
	}
	return dto.FromTenant(tenant, now), nil
}

func (s *TenantService) Suspend(ctx context.Context, id string) (dto.TenantResponse, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return dto.TenantResponse{}, err
	}

	now := s.now()
	if !tenant.Suspend(now) {
		return dto.FromTenant(tenant, now), nil
	}
	if err := s.save(ctx, tenant, domain.EventTenantSuspended); err != nil {
		return dto.TenantResponse{}, err
	}
	return dto.FromTenant(tenant, now), nil
}

func (s *TenantService) SoftDelete(ctx context.Context, id string) (dto.TenantResponse, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return dto.TenantResponse{}, err
	}

	now := s.now()
	if err := tenant.SoftDelete(now, s.retention); err != nil {
		return dto.TenantResponse{}, err
	}
	if err := s.save(ctx, tenant, domain.EventTenantSoftDeleted); err != nil {
		return dto.TenantResponse{}, err
	}
	return dto.FromTenant(tenant, now), nil
}

func (s *TenantService) Restore(ctx context.Context, id string) (dto.TenantResponse, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return dto.TenantResponse{}, err
	}

	now := s.now()
	if err := tenant.Restore(now); err != nil {
		return dto.TenantResponse{}, err
	}
	if err := s.save(ctx, tenant, domain.EventTenantRestored); err != nil {
		return dto.TenantResponse{}, err
	}
	return dto.FromTenant(tenant, now), nil
}

// HardDelete permanently removes a soft-deleted tenant whose retention window
// has elapsed. A missing tenant is not an error; the result reports
// Deleted=false. When an archiver is configured the tenant is archived first
// and an archive failure leaves the tenant in place.
func (s *TenantService) HardDelete(ctx context.Context, id string) (HardDeleteResult, error) {
	result := HardDeleteResult{TenantID: id}

	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Info("Hard delete skipped, tenant not found", zap.String("tenant_id", id))
			return result, nil
		}
		return result, err
	}

	if err := tenant.CanHardDelete(s.now()); err != nil {
		return result, err
	}

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, tenant)
		if err != nil {
			return result, fmt.Errorf("failed to archive tenant %s: %w", id, err)
		}
		result.ArchiveKey = key
	}

	if err := s.repo.Tenant().Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result, nil
		}
		return result, err
	}
	result.Deleted = true

	s.logger.Info("Tenant permanently deleted",
		zap.String("tenant_id", id),
		zap.String("subdomain", tenant.Subdomain),
		zap.String("archive_key", result.ArchiveKey))
	s.publish(ctx, domain.EventTenantHardDeleted, tenant)

	if s.notifier != nil {
		if err := s.notifier.NotifyTenantPurged(ctx, tenant); err != nil {
			s.logger.Error("Failed to send tenant purge notification", err, zap.String("tenant_id", id))
			result.NotifyErr = err
		}
	}

	return result, nil
}

func (s *TenantService) ListEligibleForHardDeletion(ctx context.Context) ([]domain.Tenant, error) {
	return s.repo.Tenant().ListEligibleForHardDeletion(ctx, s.now())
}

// DaysUntilHardDeletion returns the signed whole days until the tenant is
// purged, or nil when no hard delete is scheduled.
func (s *TenantService) DaysUntilHardDeletion(ctx context.Context, id string) (*int, error) {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	days, ok := tenant.DaysUntilHardDeletion(s.now())
	if !ok {
		return nil, nil
	}
	return &days, nil
}

func (s *TenantService) load(ctx context.Context, id string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, id)
		}
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) save(ctx context.Context, tenant *domain.Tenant, event domain.TenantEventType) error {
	if err := s.repo.Tenant().Update(ctx, tenant); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrTenantNotFound, tenant.ID)
		}
		return err
	}
	s.logger.Info("Tenant status changed",
		zap.String("tenant_id", tenant.ID),
		zap.String("event", string(event)),
		zap.String("status", string(tenant.Status)))
	s.publish(ctx, event, tenant)
	return nil
}

func (s *TenantService) publish(ctx context.Context, eventType domain.TenantEventType, tenant *domain.Tenant) {
	metrics.RecordLifecycleTransition(string(eventType))
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, domain.NewTenantEvent(eventType, tenant, s.now())); err != nil {
		s.logger.Error("Failed to publish tenant event", err,
			zap.String("tenant_id", tenant.ID),
			zap.String("event", string(eventType)))
	}
}
