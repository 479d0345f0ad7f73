package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavdigital/taskmaster/internal/task"
	"github.com/yavdigital/taskmaster/pkg/cerr"
)

// memRepository keeps the snapshot in memory for tests.
type memRepository struct {
	snap *Snapshot
}

func (m *memRepository) Load(ctx context.Context) (*Snapshot, error) {
	if m.snap == nil {
		return nil, cerr.NewError(cerr.NotFound, "no snapshot", nil)
	}
	return m.snap, nil
}

func (m *memRepository) Save(ctx context.Context, s *Snapshot) error {
	m.snap = s
	return nil
}

func (m *memRepository) Delete(ctx context.Context) error {
	m.snap = nil
	return nil
}

const sampleCSV = `ID da tarefa,Tarefa,Status,Prazo,Prioridade,Responsável,Data de criação,Data de finalização
1,Primeira,pendente,10/06/2024,1,Maria,01/06/2024,
2,Segunda,finalizado,,,João,03/06/2024,12/06/2024
abc,Inválida,pendente,,,,,
3,Terceira,,,,,05/06/2024,
`

func newTestService(repo Repository, debounce time.Duration) *Service {
	s := NewService(repo, debounce)
	// Saturday; the local week runs 2024-06-09 through 2024-06-15.
	s.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	repo := &memRepository{}
	s := newTestService(repo, 0)

	result, err := s.Import(ctx, "export.csv", []byte(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, "standard", result.Schema)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 1, result.Errored)
	assert.NotEmpty(t, result.DatasetID)

	meta := s.Meta()
	assert.Equal(t, result.DatasetID, meta.DatasetID)
	assert.Equal(t, "export.csv", meta.FileName)
	assert.Equal(t, 3, meta.TaskCount)
	assert.Equal(t, 3, meta.Filtered)

	views := s.Views()
	assert.Equal(t, 3, views.KPIs.Total)
	assert.Equal(t, 1, views.KPIs.Overdue)
	assert.Equal(t, 1, views.KPIs.HighPriorityPending)
	assert.Equal(t, 1, views.KPIs.CompletedThisWeek)

	// Creations in W22 and W23, one completion in W24.
	require.Len(t, views.Trend, 3)
	assert.Equal(t, "2024-W22", views.Trend[0].Week)
	assert.Equal(t, "2024-W24", views.Trend[2].Week)
	assert.Equal(t, 1, views.Trend[2].CompletedCumulative)

	// Snapshot persisted.
	require.NotNil(t, repo.snap)
	assert.Equal(t, result.DatasetID, repo.snap.ID)
}

func TestService_ImportErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestService(&memRepository{}, 0)

	_, err := s.Import(ctx, "a.csv", []byte(""))
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))

	_, err = s.Import(ctx, "a.csv", []byte("Tarefa,Status\nx,pendente\n"))
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))
	assert.Contains(t, err.Error(), "ID da tarefa")

	_, err = s.Import(ctx, "a.csv", []byte("ID da tarefa,Tarefa,Status,Prazo\n"))
	assert.True(t, cerr.IsCode(err, cerr.InvalidArgument))

	// Structurally fine but every row invalid.
	_, err = s.Import(ctx, "a.csv", []byte("ID da tarefa,Tarefa,Status,Prazo\nabc,x,pendente,\n"))
	assert.True(t, cerr.IsCode(err, cerr.FailedPrecondition))
}

func TestService_ImportFailureKeepsPriorDataset(t *testing.T) {
	ctx := context.Background()
	s := newTestService(&memRepository{}, 0)

	_, err := s.Import(ctx, "export.csv", []byte(sampleCSV))
	require.NoError(t, err)

	_, err = s.Import(ctx, "bad.csv", []byte("Tarefa\nx\n"))
	require.Error(t, err)
	assert.Equal(t, 3, s.Meta().TaskCount)
}

func TestService_FilterImmediate(t *testing.T) {
	ctx := context.Background()
	s := newTestService(&memRepository{}, 0)

	_, err := s.Import(ctx, "export.csv", []byte(sampleCSV))
	require.NoError(t, err)

	s.SetFilter(task.FilterSpec{Statuses: []string{task.StatusPending}})

	filtered := s.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].ID)
	assert.Equal(t, 1, s.Meta().Filtered)
	assert.Equal(t, 3, s.Meta().TaskCount)

	views := s.Views()
	assert.Equal(t, 1, views.KPIs.Total)
	// The trend keeps covering the unfiltered collection.
	assert.Len(t, views.Trend, 3)

	// Re-import resets the filter.
	_, err = s.Import(ctx, "export.csv", []byte(sampleCSV))
	require.NoError(t, err)
	assert.Len(t, s.Filtered(), 3)
}

func TestService_FilterDebounce(t *testing.T) {
	ctx := context.Background()
	s := newTestService(&memRepository{}, 20*time.Millisecond)

	_, err := s.Import(ctx, "export.csv", []byte(sampleCSV))
	require.NoError(t, err)

	// Burst of changes; only the last one should apply.
	s.SetFilter(task.FilterSpec{Statuses: []string{task.StatusCompleted}})
	s.SetFilter(task.FilterSpec{Statuses: []string{task.StatusPending}})

	// Nothing applied before the window elapses.
	assert.Len(t, s.Filtered(), 3)

	assert.Eventually(t, func() bool {
		f := s.Filtered()
		return len(f) == 1 && f[0].ID == 1
	}, time.Second, 5*time.Millisecond)
}

func TestService_RestoreAndClear(t *testing.T) {
	ctx := context.Background()
	repo := &memRepository{}

	s := newTestService(repo, 0)
	result, err := s.Import(ctx, "export.csv", []byte(sampleCSV))
	require.NoError(t, err)

	// A fresh service over the same repository picks the snapshot up.
	restored := newTestService(repo, 0)
	require.NoError(t, restored.Restore(ctx))
	assert.Equal(t, result.DatasetID, restored.Meta().DatasetID)
	assert.Len(t, restored.Filtered(), 3)

	require.NoError(t, restored.Clear(ctx))
	assert.Empty(t, restored.Meta().DatasetID)
	assert.Empty(t, restored.Filtered())
	assert.Nil(t, repo.snap)

	// Restoring with nothing persisted is not an error.
	fresh := newTestService(repo, 0)
	require.NoError(t, fresh.Restore(ctx))
	assert.Empty(t, fresh.Meta().DatasetID)
}
