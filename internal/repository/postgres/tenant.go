package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/repository"
)

type TenantRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewTenantRepository(writerDB, readerDB *gorm.DB) *TenantRepository {
	return &TenantRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}

	if err := r.writerDB.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, translateError(err)
	}
	return tenant, nil
}

// GetByID reads from the writer so that read-modify-write sequences see
// their own previous writes.
func (r *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}

	var tenant domain.Tenant
	if err := r.writerDB.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tenant, nil
}

func (r *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.readerDB.WithContext(ctx).First(&tenant, "subdomain = ?", subdomain).Error; err != nil {
		return nil, translateError(err)
	}
	return &tenant, nil
}

// Update persists lifecycle and profile fields. The settings column is left
// alone; it is only written through UpdateSettings.
func (r *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	if !isUUID(tenant.ID) {
		return repository.ErrNotFound
	}

	result := r.writerDB.WithContext(ctx).
		Model(tenant).
		Select("*").
		Omit("id", "settings", "created_at").
		Updates(tenant)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateSettings writes only the settings column; last writer wins.
func (r *TenantRepository) UpdateSettings(ctx context.Context, id string, settings *string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}

	result := r.writerDB.WithContext(ctx).
		Model(&domain.Tenant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"settings":   settings,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete physically removes the tenant. Tenant-scoped rows elsewhere go
// with it through ON DELETE CASCADE foreign keys.
func (r *TenantRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}

	result := r.writerDB.WithContext(ctx).Delete(&domain.Tenant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TenantRepository) List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	var tenants []domain.Tenant

	db := r.readerDB.WithContext(ctx)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Plan != "" {
		db = db.Where("plan = ?", filter.Plan)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	if err := db.Order("created_at ASC").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

func (r *TenantRepository) ListEligibleForHardDeletion(ctx context.Context, now time.Time) ([]domain.Tenant, error) {
	var tenants []domain.Tenant

	err := r.writerDB.WithContext(ctx).
		Where("status = ? AND hard_delete_scheduled_at IS NOT NULL AND hard_delete_scheduled_at <= ?",
			domain.TenantStatusSoftDeleted, now).
		Order("hard_delete_scheduled_at ASC").
		Find(&tenants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants eligible for hard deletion: %w", err)
	}
	return tenants, nil
}

// isUUID guards the uuid column; anything else cannot name a tenant.
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicateSubdomain
	}
	return err
}
