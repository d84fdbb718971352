package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/walatech/tenant-core/internal/config"
	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/utils"
	"github.com/walatech/tenant-core/pkg/logger"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func newRateLimitRouter(client *redis.Client, tenantLimit int, tenant *domain.Tenant) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewRateLimitMiddleware(client, &config.Config{DefaultRateLimit: tenantLimit}, logger.NewNopLogger())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if tenant != nil {
			c.Set(string(utils.ResolvedTenantKey), tenant)
		}
		c.Next()
	})
	router.Use(m.TenantRateLimit())
	router.GET("/limited", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestTenantRateLimit_FailsOpenWithoutRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	router := newRateLimitRouter(client, 1, &domain.Tenant{ID: "t1"})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestTenantRateLimit_PerTenant(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	client := startRedis(t)

	acme := newRateLimitRouter(client, 2, &domain.Tenant{ID: "acme-id"})
	globex := newRateLimitRouter(client, 2, &domain.Tenant{ID: "globex-id"})

	codes := func(router *gin.Engine, n int) []int {
		var out []int
		for i := 0; i < n; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
			out = append(out, w.Code)
		}
		return out
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes(acme, 3))
	// Another tenant has its own window
	assert.Equal(t, []int{http.StatusOK}, codes(globex, 1))

	ttl, err := client.TTL(context.Background(), "rate_limit:tenant:acme-id").Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}

func TestTenantRateLimit_FallsBackToClientIP(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	client := startRedis(t)
	router := newRateLimitRouter(client, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	count, err := client.Get(context.Background(), "rate_limit:ip:203.0.113.7").Int()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
