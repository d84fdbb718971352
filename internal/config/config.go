package config

import (
	"fmt"
	"strings"
	"time"
)

const DefaultSuperAdminSubdomain = "walatech"

type Config struct {
	AppEnv              string           `json:"app_env"`
	ServerPort          int              `json:"server_port"`
	JWTSecretKey        string           `json:"jwt_secret_key"`
	JWTExpirationHours  int              `json:"jwt_expiration_hours"`
	DefaultRateLimit    int              `json:"default_rate_limit"`
	GlobalRateLimit     int              `json:"global_rate_limit"`
	MaxRequestBodyBytes int64            `json:"max_request_body_bytes"`
	MetricsPrefix       string           `json:"metrics_prefix"`
	SuperAdmin          SuperAdminConfig `json:"super_admin"`
	Lifecycle           LifecycleConfig  `json:"lifecycle"`
}

// SuperAdminConfig controls the super-admin authorization check.
type SuperAdminConfig struct {
	// Subdomain is the reserved tenant subdomain whose requests are treated
	// as super admin. Defaults to DefaultSuperAdminSubdomain.
	Subdomain string `json:"subdomain"`
}

// LifecycleConfig holds the tenant retention policy and sweep schedule.
type LifecycleConfig struct {
	RetentionDays int           `json:"retention_days"`
	SweepInterval time.Duration `json:"sweep_interval"`
}

func (c LifecycleConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnvWithDefault("APP_ENV", "development"),
		ServerPort:          getEnvIntWithDefault("SERVER_PORT", 10000),
		JWTSecretKey:        getEnvWithDefault("JWT_SECRET_KEY", ""),
		JWTExpirationHours:  getEnvIntWithDefault("JWT_EXPIRATION_HOURS", 24),
		DefaultRateLimit:    getEnvIntWithDefault("DEFAULT_RATE_LIMIT", 1000), // per minute per tenant
		GlobalRateLimit:     getEnvIntWithDefault("GLOBAL_RATE_LIMIT", 10000), // per minute per IP
		MaxRequestBodyBytes: int64(getEnvIntWithDefault("MAX_REQUEST_BODY_BYTES", 1<<20)),
		MetricsPrefix:       getEnvWithDefault("METRICS_PREFIX", "tenant_core"),
		SuperAdmin: SuperAdminConfig{
			Subdomain: strings.ToLower(getEnvWithDefault("SUPER_ADMIN_SUBDOMAIN", DefaultSuperAdminSubdomain)),
		},
		Lifecycle: LifecycleConfig{
			RetentionDays: getEnvIntWithDefault("TENANT_RETENTION_DAYS", 30),
			SweepInterval: getEnvDurationWithDefault("TENANT_SWEEP_INTERVAL", 24*time.Hour),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Lifecycle.RetentionDays < 0 {
		return fmt.Errorf("TENANT_RETENTION_DAYS must not be negative, got %d", c.Lifecycle.RetentionDays)
	}
	if c.Lifecycle.SweepInterval <= 0 {
		return fmt.Errorf("TENANT_SWEEP_INTERVAL must be positive, got %s", c.Lifecycle.SweepInterval)
	}
	return nil
}
