package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavdigital/taskmaster/internal/task"
)

func TestStatusDistribution_OverdueOverlay(t *testing.T) {
	tasks := []task.Task{
		{Status: task.StatusCompleted},
		{Status: task.StatusInProgress},
		{Status: task.StatusPending, Overdue: true},
		{Status: task.StatusPending},
	}
	got := StatusDistribution(tasks)

	// The overdue pending task is counted twice: once in Pendentes, once
	// in Atrasadas. Denominator is 1+1+2+1 = 5.
	require.Len(t, got.Segments, 4)
	assert.Equal(t, "Finalizadas", got.Segments[0].Label)
	assert.Equal(t, 1, got.Segments[0].Count)
	assert.Equal(t, "Pendentes", got.Segments[2].Label)
	assert.Equal(t, 2, got.Segments[2].Count)
	assert.Equal(t, "Atrasadas", got.Segments[3].Label)
	assert.Equal(t, 1, got.Segments[3].Count)
	assert.InDelta(t, 20.0, got.ProgressPercentage, 1e-9)
}

func TestStatusDistribution_CompletedNeverOverdue(t *testing.T) {
	// A completed task keeps its Overdue flag out of the gauge even if a
	// caller hands in inconsistent data.
	got := StatusDistribution([]task.Task{{Status: task.StatusCompleted, Overdue: true}})
	require.Len(t, got.Segments, 1)
	assert.Equal(t, "Finalizadas", got.Segments[0].Label)
	assert.InDelta(t, 100.0, got.ProgressPercentage, 1e-9)
}

func TestStatusDistribution_FallbackBuckets(t *testing.T) {
	// Non-empty input with only unrecognized statuses collapses into one
	// bucket covering everything.
	got := StatusDistribution([]task.Task{{Status: "Em revisão"}, {Status: task.StatusUndefined}})
	require.Len(t, got.Segments, 1)
	assert.Equal(t, "Outro Status", got.Segments[0].Label)
	assert.Equal(t, 2, got.Segments[0].Count)
	assert.Zero(t, got.ProgressPercentage)

	// Empty input gets the N/D placeholder with count 1.
	empty := StatusDistribution(nil)
	require.Len(t, empty.Segments, 1)
	assert.Equal(t, task.StatusUndefined, empty.Segments[0].Label)
	assert.Equal(t, 1, empty.Segments[0].Count)
}

func TestStatusDistribution_SummaryAlwaysComplete(t *testing.T) {
	got := StatusDistribution([]task.Task{{Status: task.StatusPending}})
	require.Len(t, got.Summary, 5)
	assert.Equal(t, "Total Tarefas", got.Summary[0].Label)
	assert.Equal(t, 1, got.Summary[0].Count)
	// Zero-count summary entries stay, unlike gauge segments.
	assert.Equal(t, "Atrasadas", got.Summary[4].Label)
	assert.Equal(t, 0, got.Summary[4].Count)
}
