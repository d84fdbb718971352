package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/repository"
	"github.com/walatech/tenant-core/internal/settings"
	"github.com/walatech/tenant-core/pkg/logger"
)

// TenantSettingsService reads and writes the settings document of active
// tenants. Every read applies the legacy feature migration; the migrated
// form is only persisted by a subsequent write.
type TenantSettingsService struct {
	repo      repository.Repository
	logger    *logger.Logger
	publisher EventPublisher
	now       func() time.Time
}

func NewTenantSettingsService(repo repository.Repository, logger *logger.Logger) *TenantSettingsService {
	return &TenantSettingsService{repo: repo, logger: logger, now: time.Now}
}

func (s *TenantSettingsService) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

func (s *TenantSettingsService) Get(ctx context.Context, tenantID string) (settings.Document, error) {
	_, doc, err := s.loadDocument(ctx, tenantID)
	return doc, err
}

// Update deep merges partial into the current document, validates the result
// and stores it. Nothing is written when validation fails.
func (s *TenantSettingsService) Update(ctx context.Context, tenantID string, partial settings.Document) (settings.Document, error) {
	tenant, current, err := s.loadDocument(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	merged := settings.Merge(current, partial)
	if err := s.store(ctx, tenant, merged, domain.EventSettingsUpdated); err != nil {
		return nil, err
	}
	return merged, nil
}

// Reset replaces the stored document with the defaults.
func (s *TenantSettingsService) Reset(ctx context.Context, tenantID string) (settings.Document, error) {
	tenant, err := s.loadActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	defaults := settings.Default()
	if err := s.store(ctx, tenant, defaults, domain.EventSettingsReset); err != nil {
		return nil, err
	}
	return defaults, nil
}

// GetByPath returns the value at a dot path. The second value is false when
// the path does not exist.
func (s *TenantSettingsService) GetByPath(ctx context.Context, tenantID, path string) (any, bool, error) {
	if err := settings.ValidatePath(path); err != nil {
		return nil, false, err
	}
	_, doc, err := s.loadDocument(ctx, tenantID)
	if err != nil {
		return nil, false, err
	}
	value, ok := settings.GetPath(doc, path)
	return value, ok, nil
}

// SetByPath writes value at a dot path, creating missing intermediate
// objects, then validates and stores the whole document.
func (s *TenantSettingsService) SetByPath(ctx context.Context, tenantID, path string, value any) (settings.Document, error) {
	tenant, current, err := s.loadDocument(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	updated, err := settings.SetPath(current, path, value)
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, tenant, updated, domain.EventSettingsUpdated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TenantSettingsService) loadActive(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTenantNotFound, tenantID)
		}
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, fmt.Errorf("%w: %s is %s", ErrTenantInactive, tenantID, tenant.Status)
	}
	return tenant, nil
}

func (s *TenantSettingsService) loadDocument(ctx context.Context, tenantID string) (*domain.Tenant, settings.Document, error) {
	tenant, err := s.loadActive(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}

	doc, err := settings.Parse(tenant.Settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse settings of tenant %s: %v", tenantID, err)
	}
	return tenant, settings.MigrateLegacyFeatures(doc), nil
}

func (s *TenantSettingsService) store(ctx context.Context, tenant *domain.Tenant, doc settings.Document, event domain.TenantEventType) error {
	if err := settings.Validate(doc); err != nil {
		return err
	}

	encoded, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := s.repo.Tenant().UpdateSettings(ctx, tenant.ID, &encoded); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrTenantNotFound, tenant.ID)
		}
		return err
	}

	s.logger.Info("Tenant settings saved",
		zap.String("tenant_id", tenant.ID),
		zap.String("event", string(event)))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, domain.NewTenantEvent(event, tenant, s.now())); err != nil {
			s.logger.Error("Failed to publish tenant event", err, zap.String("tenant_id", tenant.ID))
		}
	}
	return nil
}
