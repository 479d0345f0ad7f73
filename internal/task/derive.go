package task

import (
	"time"

	"github.com/yavdigital/taskmaster/pkg/timeparse"
)

// derive computes all derived fields from the already-parsed raw fields.
// It is total: no re-parsing, no I/O, no panics. ref is the day-truncated
// reference instant shared by every row of the batch, so no row observes
// a different "now" than another.
//
// Precedence is explicit: status has already been resolved (including the
// discontinuation override) before any rule below runs.
func derive(t *Task, ref time.Time) {
	closed := t.IsClosed()
	paused := t.IsPaused()

	t.Overdue = t.Deadline != nil && t.Deadline.Before(ref) && !closed

	staleCutoff := ref.AddDate(0, 0, -7)
	t.Stale = !closed && !paused &&
		t.UpdatedAt != nil && t.UpdatedAt.Before(staleCutoff)

	// "This week" uses the Sunday-start local convention, not ISO weeks.
	weekStart, weekEnd := timeparse.WeekBounds(ref)
	t.CompletedThisWeek = t.Status == StatusCompleted && t.CompletedAt != nil &&
		!t.CompletedAt.Before(weekStart) && !t.CompletedAt.After(weekEnd)

	t.HighPriorityPending = t.Priority == PriorityHigh &&
		(t.Status == StatusPending || t.Status == StatusInProgress)

	t.ExternallyBlocked = t.PendingWith != ""

	t.CreationWeek = timeparse.WeekIDPtr(t.CreatedAt)
	if t.Status == StatusCompleted {
		t.CompletionWeek = timeparse.WeekIDPtr(t.CompletedAt)
	} else {
		t.CompletionWeek = ""
	}

	t.Active = !closed && !paused
}
