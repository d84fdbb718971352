package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SUPER_ADMIN_SUBDOMAIN", "")
	t.Setenv("TENANT_RETENTION_DAYS", "")
	t.Setenv("TENANT_SWEEP_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.ServerPort)
	assert.Equal(t, DefaultSuperAdminSubdomain, cfg.SuperAdmin.Subdomain)
	assert.Equal(t, 30, cfg.Lifecycle.RetentionDays)
	assert.Equal(t, 30*24*time.Hour, cfg.Lifecycle.Retention())
	assert.Equal(t, 24*time.Hour, cfg.Lifecycle.SweepInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SUPER_ADMIN_SUBDOMAIN", "Control")
	t.Setenv("TENANT_RETENTION_DAYS", "7")
	t.Setenv("TENANT_SWEEP_INTERVAL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "control", cfg.SuperAdmin.Subdomain)
	assert.Equal(t, 7*24*time.Hour, cfg.Lifecycle.Retention())
	assert.Equal(t, time.Hour, cfg.Lifecycle.SweepInterval)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET_KEY")
}

func TestLoad_RejectsNegativeRetention(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("TENANT_RETENTION_DAYS", "-1")

	_, err := Load()
	assert.ErrorContains(t, err, "TENANT_RETENTION_DAYS")
}

func TestDatabaseConfig_URL(t *testing.T) {
	c := &DatabaseConfig{Host: "db", Port: "5432", User: "app", Password: "p@ss word", DBName: "tenant_core", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/tenant_core?sslmode=disable", c.URL())
}
