package domain

import "time"

// SweepFailure records a tenant the cleanup sweeper could not hard-delete.
type SweepFailure struct {
	TenantID string
	Err      error
}

// SweepReport is the outcome of one cleanup sweep. A tenant appears in at
// most one of Deleted and Failures; tenants that vanished before their turn
// appear in neither.
type SweepReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Candidates int
	Deleted    []string
	Failures   []SweepFailure
	// NotifyFailures lists deleted tenants whose purge notification failed.
	NotifyFailures []SweepFailure
	// Err is set when the eligible tenants could not be listed at all.
	Err error
}
