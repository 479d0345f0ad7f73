package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yavdigital/taskmaster/internal/task"
)

func TestKPIs_Counters(t *testing.T) {
	ref := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tasks := []task.Task{
		{Status: task.StatusPending, Active: true, Overdue: true,
			HighPriorityPending: true, CreatedAt: &created},
		{Status: task.StatusInProgress, Active: true, Stale: true},
		{Status: task.StatusCompleted, CompletedThisWeek: true},
		{Status: task.StatusPending, Active: true, ExternallyBlocked: true},
		// Blocked but already closed: not counted as pending external.
		{Status: task.StatusDiscontinued, ExternallyBlocked: true},
	}
	got := KPIs(tasks, ref)

	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 3, got.Active)
	assert.Equal(t, 2, got.Pending)
	assert.Equal(t, 1, got.InProgress)
	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 1, got.CompletedThisWeek)
	assert.Equal(t, 1, got.Overdue)
	assert.Equal(t, 1, got.Stale)
	assert.Equal(t, 1, got.HighPriorityPending)
	assert.Equal(t, 1, got.PendingExternal)
	// 106 days since March 1st.
	assert.Equal(t, "3 meses", got.ClientActiveTime)
}

func TestKPIs_EmptyCollection(t *testing.T) {
	got := KPIs(nil, time.Now())
	assert.Zero(t, got.Total)
	assert.Equal(t, task.StatusUndefined, got.ClientActiveTime)
}

func TestHumanizeSince(t *testing.T) {
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		from time.Time
		want string
	}{
		{base.Add(-2 * time.Hour), "menos de 1 dia"},
		{base.AddDate(0, 0, -1), "1 dia"},
		{base.AddDate(0, 0, -15), "15 dias"},
		{base.AddDate(0, 0, -30), "1 mês"},
		{base.AddDate(0, 0, -75), "2 meses"},
		{base.AddDate(0, 0, -365), "1 ano"},
		{base.AddDate(0, 0, -800), "2 anos"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, humanizeSince(c.from, base), "from %s", c.from)
	}
}
