package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/walatech/tenant-core/pkg/utils"
)

var ErrInvalidLifecycleTransition = errors.New("invalid lifecycle transition")

type LifecycleAction string

const (
	ActionCreate     LifecycleAction = "create"
	ActionActivate   LifecycleAction = "activate"
	ActionSuspend    LifecycleAction = "suspend"
	ActionSoftDelete LifecycleAction = "soft-delete"
	ActionRestore    LifecycleAction = "restore"
	ActionHardDelete LifecycleAction = "hard-delete"
)

// TransitionError describes a rejected lifecycle transition.
type TransitionError struct {
	TenantID string
	From     TenantStatus
	Action   LifecycleAction
	Reason   string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("cannot %s tenant %s in status %q", e.Action, e.TenantID, e.From)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidLifecycleTransition
}

// IsValidInitialStatus reports whether a tenant may be provisioned with status.
func IsValidInitialStatus(status TenantStatus) bool {
	return status == TenantStatusTrial || status == TenantStatusActive
}

// Activate moves the tenant to active. It reports false when the tenant was
// already active, in which case nothing was touched.
func (t *Tenant) Activate(now time.Time) bool {
	if t.Status == TenantStatusActive {
		return false
	}
	t.Status = TenantStatusActive
	t.clearDeletion()
	t.UpdatedAt = now
	return true
}

// Suspend moves the tenant to suspended from any state.
func (t *Tenant) Suspend(now time.Time) bool {
	if t.Status == TenantStatusSuspended {
		return false
	}
	t.Status = TenantStatusSuspended
	t.clearDeletion()
	t.UpdatedAt = now
	return true
}

// SoftDelete marks the tenant for removal once retention has elapsed.
func (t *Tenant) SoftDelete(now time.Time, retention time.Duration) error {
	switch t.Status {
	case TenantStatusActive, TenantStatusTrial, TenantStatusSuspended:
	default:
		return &TransitionError{TenantID: t.ID, From: t.Status, Action: ActionSoftDelete}
	}

	scheduled := now.Add(retention)
	deletedAt := now
	t.StatusBeforeDeletion = t.Status
	t.Status = TenantStatusSoftDeleted
	t.DeletedAt = &deletedAt
	t.HardDeleteScheduledAt = &scheduled
	t.UpdatedAt = now
	return nil
}

// Restore undoes a soft delete, returning the tenant to the status it had
// before deletion.
func (t *Tenant) Restore(now time.Time) error {
	if t.Status != TenantStatusSoftDeleted {
		return &TransitionError{TenantID: t.ID, From: t.Status, Action: ActionRestore}
	}

	previous := t.StatusBeforeDeletion
	switch previous {
	case TenantStatusActive, TenantStatusTrial, TenantStatusSuspended:
	default:
		previous = TenantStatusActive
	}

	t.Status = previous
	t.clearDeletion()
	t.UpdatedAt = now
	return nil
}

// CanHardDelete returns nil when the tenant may be physically removed at now.
func (t *Tenant) CanHardDelete(now time.Time) error {
	if t.Status != TenantStatusSoftDeleted {
		return &TransitionError{TenantID: t.ID, From: t.Status, Action: ActionHardDelete,
			Reason: "tenant must be soft-deleted first"}
	}
	if !t.IsEligibleForHardDeletion(now) {
		return &TransitionError{TenantID: t.ID, From: t.Status, Action: ActionHardDelete,
			Reason: "retention window has not elapsed"}
	}
	return nil
}

// IsEligibleForHardDeletion holds for soft-deleted tenants whose scheduled
// hard-delete time is at or before now. Once true it stays true for any later now.
func (t *Tenant) IsEligibleForHardDeletion(now time.Time) bool {
	return t.Status == TenantStatusSoftDeleted &&
		t.HardDeleteScheduledAt != nil &&
		!t.HardDeleteScheduledAt.After(now)
}

// DaysUntilHardDeletion is the signed number of whole days until the
// scheduled hard delete. The second value is false when nothing is scheduled.
func (t *Tenant) DaysUntilHardDeletion(now time.Time) (int, bool) {
	if t.HardDeleteScheduledAt == nil {
		return 0, false
	}
	return utils.WholeDaysUntil(now, *t.HardDeleteScheduledAt), true
}

func (t *Tenant) clearDeletion() {
	t.StatusBeforeDeletion = ""
	t.DeletedAt = nil
	t.HardDeleteScheduledAt = nil
}
