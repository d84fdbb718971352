package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const DefaultPrefix = "tenant_core"

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Tenant resolution outcomes: resolved, none, not_found, inactive, error
	TenantResolutionsTotal *prometheus.CounterVec

	// Lifecycle transitions by event type
	LifecycleTransitionsTotal *prometheus.CounterVec

	// Cleanup sweeper metrics
	SweepRunsTotal      prometheus.Counter
	SweepTenantsDeleted prometheus.Counter
	SweepTenantFailures prometheus.Counter
	SweepDuration       prometheus.Histogram
	SweepLastRunMillis  prometheus.Gauge

	initOnce sync.Once
)

// InitMetrics registers all collectors with the default registry. Only the
// first call has an effect.
func InitMetrics(prefix string) {
	initOnce.Do(func() {
		if prefix == "" {
			prefix = DefaultPrefix
		}

		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		TenantResolutionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_tenant_resolutions_total",
				Help: "Total number of host to tenant resolutions by outcome",
			},
			[]string{"outcome"},
		)

		LifecycleTransitionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_tenant_lifecycle_transitions_total",
				Help: "Total number of tenant lifecycle events",
			},
			[]string{"event"},
		)

		SweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_cleanup_sweeps_total",
			Help: "Total number of cleanup sweeps",
		})

		SweepTenantsDeleted = promauto.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_cleanup_tenants_deleted_total",
			Help: "Total number of tenants hard-deleted by the sweeper",
		})

		SweepTenantFailures = promauto.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_cleanup_tenant_failures_total",
			Help: "Total number of tenants the sweeper failed to delete",
		})

		SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    prefix + "_cleanup_sweep_duration_seconds",
			Help:    "Duration of cleanup sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		})

		SweepLastRunMillis = promauto.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "_cleanup_last_sweep_timestamp_milliseconds",
			Help: "Unix time in milliseconds of the last finished sweep",
		})
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordHTTPRequest(method, path, status string, seconds float64) {
	if HTTPRequestsTotal == nil {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
}

func RecordResolution(outcome string) {
	if TenantResolutionsTotal == nil {
		return
	}
	TenantResolutionsTotal.WithLabelValues(outcome).Inc()
}

func RecordLifecycleTransition(event string) {
	if LifecycleTransitionsTotal == nil {
		return
	}
	LifecycleTransitionsTotal.WithLabelValues(event).Inc()
}

// RecordSweep records one finished sweep.
func RecordSweep(deleted, failed int, seconds float64, finishedAtMillis int64) {
	if SweepRunsTotal == nil {
		return
	}
	SweepRunsTotal.Inc()
	SweepTenantsDeleted.Add(float64(deleted))
	SweepTenantFailures.Add(float64(failed))
	SweepDuration.Observe(seconds)
	SweepLastRunMillis.Set(float64(finishedAtMillis))
}
