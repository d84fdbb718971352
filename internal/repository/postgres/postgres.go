package postgres

import (
	"gorm.io/gorm"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/repository"
)

type postgresRepository struct {
	writerDB   *gorm.DB
	readerDB   *gorm.DB
	tenantRepo repository.TenantRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.Repository {
	return &postgresRepository{
		writerDB:   dbConnections.Writer,
		readerDB:   dbConnections.Reader,
		tenantRepo: NewTenantRepository(dbConnections.Writer, dbConnections.Reader),
	}
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}
