package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordersAreNoOpsBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		if HTTPRequestsTotal == nil {
			RecordHTTPRequest("GET", "/health", "200", 0.01)
			RecordResolution("resolved")
			RecordLifecycleTransition("tenant.activated")
			RecordSweep(1, 0, 0.5, 0)
		}
	})
}

func TestInitMetrics(t *testing.T) {
	InitMetrics("test")
	InitMetrics("ignored")

	RecordResolution("not_found")
	RecordResolution("not_found")
	RecordLifecycleTransition("tenant.soft_deleted")
	RecordSweep(2, 1, 0.2, 1752717600000)

	assert.Equal(t, float64(2), testutil.ToFloat64(TenantResolutionsTotal.WithLabelValues("not_found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LifecycleTransitionsTotal.WithLabelValues("tenant.soft_deleted")))
	assert.Equal(t, float64(2), testutil.ToFloat64(SweepTenantsDeleted))
	assert.Equal(t, float64(1), testutil.ToFloat64(SweepTenantFailures))
	assert.Equal(t, float64(1752717600000), testutil.ToFloat64(SweepLastRunMillis))
	assert.NotNil(t, Handler())
}
