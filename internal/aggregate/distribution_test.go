package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavdigital/taskmaster/internal/task"
)

func TestStageDistribution_FirstOccurrenceOrder(t *testing.T) {
	tasks := []task.Task{
		{Stage: "Execução"},
		{Stage: "Planejamento"},
		{Stage: "Execução"},
		{Stage: ""},
	}
	got := StageDistribution(tasks)
	require.Len(t, got, 3)
	assert.Equal(t, "Execução", got[0].Label)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "Planejamento", got[1].Label)
	assert.Equal(t, task.UndefinedStage, got[2].Label)
	assert.Equal(t, 1, got[2].Count)
}

func TestPriorityDistribution_FixedOrderSkipsZero(t *testing.T) {
	tasks := []task.Task{
		{Priority: task.PriorityLow},
		{Priority: task.PriorityHigh},
		{Priority: task.PriorityLow},
		{Priority: task.PriorityNone},
	}
	got := PriorityDistribution(tasks)
	// Alta before Baixa regardless of input order; Média omitted.
	require.Len(t, got, 3)
	assert.Equal(t, "Alta", got[0].Label)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, "Baixa", got[1].Label)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, task.StatusUndefined, got[2].Label)
}

func TestPriorityDistribution_Placeholders(t *testing.T) {
	// All-undefined input keeps the plain N/D bucket with its real count.
	nonePrioritized := PriorityDistribution([]task.Task{{}, {}})
	require.Len(t, nonePrioritized, 1)
	assert.Equal(t, task.StatusUndefined, nonePrioritized[0].Label)
	assert.Equal(t, 2, nonePrioritized[0].Count)

	empty := PriorityDistribution(nil)
	require.Len(t, empty, 1)
	assert.Equal(t, task.StatusUndefined, empty[0].Label)
	assert.Equal(t, 1, empty[0].Count)
}
