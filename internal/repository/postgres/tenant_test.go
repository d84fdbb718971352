package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/repository"
	"github.com/walatech/tenant-core/internal/repository/postgres"
)

// setupTestDB starts Postgres, applies the embedded migrations and
// returns a gorm connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tenant_core_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, postgres.RunMigrations(connStr))

	db, err := config.OpenGorm(connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func newTenant(subdomain string, status domain.TenantStatus) *domain.Tenant {
	return &domain.Tenant{
		Name:      subdomain + " Inc",
		Subdomain: subdomain,
		Status:    status,
		Plan:      domain.TenantPlanBasic,
	}
}

func TestTenantRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := setupTestDB(t)
	repo := postgres.NewTenantRepository(db, db)
	ctx := context.Background()

	t.Run("create and look up", func(t *testing.T) {
		created, err := repo.Create(ctx, newTenant("acme", domain.TenantStatusActive))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		byID, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "acme", byID.Subdomain)

		bySubdomain, err := repo.GetBySubdomain(ctx, "acme")
		require.NoError(t, err)
		assert.Equal(t, created.ID, bySubdomain.ID)
	})

	t.Run("duplicate subdomain", func(t *testing.T) {
		_, err := repo.Create(ctx, newTenant("acme", domain.TenantStatusTrial))
		assert.ErrorIs(t, err, repository.ErrDuplicateSubdomain)
	})

	t.Run("missing and malformed ids are not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.GetBySubdomain(ctx, "nobody")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, "00000000-0000-0000-0000-000000000000"), repository.ErrNotFound)
	})

	t.Run("update keeps settings", func(t *testing.T) {
		tenant, err := repo.Create(ctx, newTenant("globex", domain.TenantStatusTrial))
		require.NoError(t, err)

		settings := `{"branding":{"primaryColor":"#112233"}}`
		require.NoError(t, repo.UpdateSettings(ctx, tenant.ID, &settings))

		// A stale copy without settings must not clear the column
		tenant.Settings = nil
		tenant.Status = domain.TenantStatusActive
		require.NoError(t, repo.Update(ctx, tenant))

		stored, err := repo.GetByID(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TenantStatusActive, stored.Status)
		require.NotNil(t, stored.Settings)
		assert.JSONEq(t, settings, *stored.Settings)
	})

	t.Run("update of a missing tenant", func(t *testing.T) {
		ghost := newTenant("ghost", domain.TenantStatusActive)
		ghost.ID = "11111111-1111-1111-1111-111111111111"
		assert.ErrorIs(t, repo.Update(ctx, ghost), repository.ErrNotFound)

		settings := `{}`
		assert.ErrorIs(t, repo.UpdateSettings(ctx, ghost.ID, &settings), repository.ErrNotFound)
	})

	t.Run("eligibility and hard delete", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)

		overdue, err := repo.Create(ctx, newTenant("overdue", domain.TenantStatusActive))
		require.NoError(t, err)
		require.NoError(t, overdue.SoftDelete(now.Add(-40*24*time.Hour), 30*24*time.Hour))
		require.NoError(t, repo.Update(ctx, overdue))

		pending, err := repo.Create(ctx, newTenant("pending", domain.TenantStatusActive))
		require.NoError(t, err)
		require.NoError(t, pending.SoftDelete(now, 30*24*time.Hour))
		require.NoError(t, repo.Update(ctx, pending))

		eligible, err := repo.ListEligibleForHardDeletion(ctx, now)
		require.NoError(t, err)
		require.Len(t, eligible, 1)
		assert.Equal(t, overdue.ID, eligible[0].ID)
		assert.Equal(t, domain.TenantStatusActive, eligible[0].StatusBeforeDeletion)

		require.NoError(t, repo.Delete(ctx, overdue.ID))
		assert.ErrorIs(t, repo.Delete(ctx, overdue.ID), repository.ErrNotFound)
	})

	t.Run("list filters", func(t *testing.T) {
		active, err := repo.List(ctx, domain.TenantFilter{Status: domain.TenantStatusActive})
		require.NoError(t, err)
		for _, tenant := range active {
			assert.Equal(t, domain.TenantStatusActive, tenant.Status)
		}

		limited, err := repo.List(ctx, domain.TenantFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}
