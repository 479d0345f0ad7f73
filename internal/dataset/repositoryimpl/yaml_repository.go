package repositoryimpl

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yavdigital/taskmaster/internal/dataset"
	"github.com/yavdigital/taskmaster/pkg/cerr"
	"github.com/yavdigital/taskmaster/pkg/storage"
)

// snapshotPath is the fixed key of the current dataset. There is exactly
// one dataset at a time; a new import overwrites it.
const snapshotPath = "datasets/current.yaml"

type YAMLRepository struct {
	storage storage.Storage
}

func NewYAMLRepository(s storage.Storage) *YAMLRepository {
	return &YAMLRepository{storage: s}
}

func (r *YAMLRepository) Load(ctx context.Context) (*dataset.Snapshot, error) {
	data, err := r.storage.Read(ctx, snapshotPath)
	if err != nil {
		return nil, cerr.WrapStorageReadError("dataset snapshot", err)
	}
	var s dataset.Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal dataset snapshot: %w", err))
	}
	return &s, nil
}

func (r *YAMLRepository) Save(ctx context.Context, s *dataset.Snapshot) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal dataset snapshot: %w", err))
	}
	if err := r.storage.Write(ctx, snapshotPath, data); err != nil {
		return cerr.WrapStorageWriteError("dataset snapshot", err)
	}
	return nil
}

func (r *YAMLRepository) Delete(ctx context.Context) error {
	if err := r.storage.Delete(ctx, snapshotPath); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return cerr.WrapStorageDeleteError("dataset snapshot", err)
	}
	return nil
}
