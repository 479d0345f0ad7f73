package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavdigital/taskmaster/internal/task"
)

func TestProgressBy_Responsible(t *testing.T) {
	tasks := []task.Task{
		{Responsible: "Maria", Status: task.StatusCompleted},
		{Responsible: "Maria", Status: task.StatusPending},
		{Responsible: "João", Status: task.StatusCompleted},
		{Responsible: "", Status: task.StatusPending},
	}
	got := ProgressBy(tasks, ByResponsible)
	require.Len(t, got, 3)

	// Alphabetical order: João, Maria, N/A.
	assert.Equal(t, "João", got[0].Name)
	assert.InDelta(t, 100.0, got[0].Percentage, 1e-9)

	assert.Equal(t, "Maria", got[1].Name)
	assert.Equal(t, 2, got[1].Total)
	assert.Equal(t, 1, got[1].Completed)
	assert.InDelta(t, 50.0, got[1].Percentage, 1e-9)

	assert.Equal(t, task.NotAvailable, got[2].Name)
	assert.Zero(t, got[2].Percentage)
}

func TestProgressBy_ExcludesPausedAndDiscontinued(t *testing.T) {
	tasks := []task.Task{
		{Strategy: "Expansão", Status: task.StatusCompleted},
		{Strategy: "Expansão", Status: task.StatusPending, Paused: "sim"},
		{Strategy: "Expansão", Status: task.StatusDiscontinued},
	}
	got := ProgressBy(tasks, ByStrategy)
	require.Len(t, got, 1)
	// Only the unpaused, non-discontinued task counts.
	assert.Equal(t, 1, got[0].Total)
	assert.InDelta(t, 100.0, got[0].Percentage, 1e-9)
}

func TestProgressBy_AllExcludedYieldsNoGroups(t *testing.T) {
	tasks := []task.Task{
		{Responsible: "Ana", Status: task.StatusDiscontinued},
		{Responsible: "Ana", Paused: "sim"},
	}
	assert.Empty(t, ProgressBy(tasks, ByResponsible))
	assert.Empty(t, ProgressBy(nil, ByResponsible))
}
