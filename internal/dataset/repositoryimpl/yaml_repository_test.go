package repositoryimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavdigital/taskmaster/internal/dataset"
	"github.com/yavdigital/taskmaster/internal/task"
	"github.com/yavdigital/taskmaster/pkg/cerr"
	"github.com/yavdigital/taskmaster/pkg/storage"
)

func newRepo(t *testing.T) *YAMLRepository {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	return NewYAMLRepository(store)
}

func TestYAMLRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	deadline := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	snap := &dataset.Snapshot{
		ID:        "01J0TESTSNAPSHOT0000000000",
		FileName:  "export.csv",
		Schema:    "standard",
		Reference: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		Tasks: []task.Task{
			{ID: 1, Title: "Revisar contrato", Status: task.StatusPending,
				Priority: task.PriorityHigh, Deadline: &deadline, Overdue: false},
			{ID: 2, Title: "Enviar proposta", Status: task.StatusCompleted},
		},
	}
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Schema, got.Schema)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "Revisar contrato", got.Tasks[0].Title)
	require.NotNil(t, got.Tasks[0].Deadline)
	assert.True(t, got.Tasks[0].Deadline.Equal(deadline))
	// Absent dates stay absent.
	assert.Nil(t, got.Tasks[1].Deadline)
}

func TestYAMLRepository_LoadMissing(t *testing.T) {
	_, err := newRepo(t).Load(context.Background())
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}

func TestYAMLRepository_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	// Deleting with nothing saved is fine.
	require.NoError(t, repo.Delete(ctx))

	require.NoError(t, repo.Save(ctx, &dataset.Snapshot{ID: "x", Tasks: []task.Task{{ID: 1}}}))
	require.NoError(t, repo.Delete(ctx))
	_, err := repo.Load(ctx)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}
