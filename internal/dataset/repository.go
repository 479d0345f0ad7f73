package dataset

import "context"

// Repository persists the single current snapshot. Load returns a
// NotFound-coded error when nothing has been imported yet.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s *Snapshot) error
	Delete(ctx context.Context) error
}
