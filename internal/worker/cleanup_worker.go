package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/walatech/tenant-core/internal/domain"
	"github.com/walatech/tenant-core/internal/metrics"
	"github.com/walatech/tenant-core/internal/service"
	"github.com/walatech/tenant-core/pkg/logger"
)

type TenantPurger interface {
	ListEligibleForHardDeletion(ctx context.Context) ([]domain.Tenant, error)
	HardDelete(ctx context.Context, id string) (service.HardDeleteResult, error)
}

// CleanupWorker periodically hard-deletes soft-deleted tenants whose
// retention window has passed. Tenants are processed one at a time and a
// failure never stops the rest of the sweep.
type CleanupWorker struct {
	tenants      TenantPurger
	logger       *logger.Logger
	interval     time.Duration
	runOnStart   bool
	now          func() time.Time
	shutdownChan chan struct{}
	waitGroup    sync.WaitGroup
	sweepMutex   sync.Mutex
}

func NewCleanupWorker(tenants TenantPurger, logger *logger.Logger, interval time.Duration) *CleanupWorker {
	return &CleanupWorker{
		tenants:      tenants,
		logger:       logger,
		interval:     interval,
		now:          time.Now,
		shutdownChan: make(chan struct{}),
	}
}

// RunOnStart makes Start perform a sweep immediately instead of waiting
// for the first tick.
func (w *CleanupWorker) RunOnStart(enabled bool) {
	w.runOnStart = enabled
}

func (w *CleanupWorker) Start() {
	w.logger.Info("Starting cleanup worker", zap.Duration("interval", w.interval))

	w.waitGroup.Add(1)
	go w.run()
}

func (w *CleanupWorker) Stop() {
	w.logger.Info("Stopping cleanup worker...")
	close(w.shutdownChan)
	w.waitGroup.Wait()
	w.logger.Info("Cleanup worker stopped")
}

func (w *CleanupWorker) run() {
	defer w.waitGroup.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if w.runOnStart {
		w.Sweep(context.Background())
	}

	for {
		select {
		case <-w.shutdownChan:
			w.logger.Info("Cleanup worker shutting down")
			return
		case <-ticker.C:
			w.Sweep(context.Background())
		}
	}
}

// Sweep hard-deletes every eligible tenant and reports what happened.
// Concurrent calls, from the ticker and the admin trigger, are serialized.
func (w *CleanupWorker) Sweep(ctx context.Context) domain.SweepReport {
	w.sweepMutex.Lock()
	defer w.sweepMutex.Unlock()

	report := domain.SweepReport{StartedAt: w.now()}
	defer func() {
		report.FinishedAt = w.now()
		metrics.RecordSweep(
			len(report.Deleted),
			len(report.Failures),
			report.FinishedAt.Sub(report.StartedAt).Seconds(),
			report.FinishedAt.UnixMilli(),
		)
	}()

	eligible, err := w.tenants.ListEligibleForHardDeletion(ctx)
	if err != nil {
		w.logger.Error("Failed to list tenants eligible for hard deletion", err)
		report.Err = fmt.Errorf("failed to list eligible tenants: %w", err)
		return report
	}
	report.Candidates = len(eligible)

	for i := range eligible {
		tenant := &eligible[i]
		log := w.logger.With(zap.String("tenant_id", tenant.ID), zap.String("subdomain", tenant.Subdomain))

		result, err := w.tenants.HardDelete(ctx, tenant.ID)
		if err != nil {
			log.Error("Failed to hard delete tenant", err)
			report.Failures = append(report.Failures, domain.SweepFailure{TenantID: tenant.ID, Err: err})
			continue
		}
		if !result.Deleted {
			log.Info("Tenant already removed, skipping")
			continue
		}

		log.Info("Tenant hard deleted by cleanup sweep", zap.String("archive_key", result.ArchiveKey))
		report.Deleted = append(report.Deleted, tenant.ID)
		if result.NotifyErr != nil {
			report.NotifyFailures = append(report.NotifyFailures, domain.SweepFailure{TenantID: tenant.ID, Err: result.NotifyErr})
		}
	}

	w.logger.Info("Cleanup sweep finished",
		zap.Int("candidates", report.Candidates),
		zap.Int("deleted", len(report.Deleted)),
		zap.Int("failed", len(report.Failures)))

	return report
}
