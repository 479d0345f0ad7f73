package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sourcegraph/conc"

	"github.com/yavdigital/taskmaster/internal/aggregate"
	"github.com/yavdigital/taskmaster/internal/task"
	"github.com/yavdigital/taskmaster/pkg/cerr"
	"github.com/yavdigital/taskmaster/pkg/timeparse"
)

// Service holds the current dataset. The collection is immutable once
// committed; filter changes only ever produce new filtered slices and
// view structures. All methods are safe for concurrent use.
type Service struct {
	repo     Repository
	debounce time.Duration
	now      func() time.Time

	mu       sync.Mutex
	timer    *time.Timer
	pending  *task.FilterSpec
	meta     Meta
	ref      time.Time
	all      []task.Task
	spec     task.FilterSpec
	filtered []task.Task
	views    Views
}

func NewService(repo Repository, debounce time.Duration) *Service {
	return &Service{
		repo:     repo,
		debounce: debounce,
		now:      time.Now,
	}
}

// Import parses, validates, and normalizes a CSV export, then commits it
// as the current dataset, replacing any prior one. No partial state is
// committed on failure.
func (s *Service) Import(ctx context.Context, fileName string, data []byte) (*ImportResult, error) {
	headers, rows, err := parseCSV(data)
	if err != nil {
		return nil, err
	}

	mapper := task.DetectSchema(headers)
	if missing := missingColumns(headers, mapper.Required()); len(missing) > 0 {
		return nil, cerr.NewError(cerr.InvalidArgument,
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}

	// One day-truncated reference instant for the whole batch keeps
	// derived fields consistent across rows.
	ref := timeparse.TruncateDay(s.now())

	tasks := make([]task.Task, 0, len(rows))
	errored := 0
	for _, row := range rows {
		t := mapper.Normalize(row, ref)
		if t.Invalid {
			errored++
			continue
		}
		tasks = append(tasks, t)
	}
	if len(tasks) == 0 {
		return nil, cerr.NewError(cerr.FailedPrecondition, "no valid tasks found in file", nil)
	}

	snap := &Snapshot{
		ID:        ulid.Make().String(),
		FileName:  fileName,
		Schema:    mapper.Name(),
		Reference: ref,
		CreatedAt: s.now(),
		Tasks:     tasks,
	}

	s.commit(snap)

	// Persistence is best-effort: the dataset lives in memory either way,
	// it just will not survive a restart.
	if err := s.repo.Save(ctx, snap); err != nil {
		slog.WarnContext(ctx, "failed to persist dataset snapshot", "error", err)
	}

	return &ImportResult{
		DatasetID: snap.ID,
		FileName:  fileName,
		Schema:    mapper.Name(),
		TotalRows: len(rows),
		Imported:  len(tasks),
		Errored:   errored,
	}, nil
}

// Restore loads the persisted snapshot, if any. Called once at startup.
func (s *Service) Restore(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		if cerr.IsCode(err, cerr.NotFound) {
			return nil
		}
		return err
	}
	s.commit(snap)
	slog.InfoContext(ctx, "restored dataset snapshot",
		"dataset_id", snap.ID, "file", snap.FileName, "tasks", len(snap.Tasks))
	return nil
}

// Clear discards the current dataset and its persisted snapshot.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
	s.meta = Meta{}
	s.all = nil
	s.spec = task.FilterSpec{}
	s.filtered = nil
	s.views = computeViews(nil, nil, s.ref)
	return nil
}

// SetFilter schedules a debounced recompute of the filtered view. Bursts
// of calls within the debounce window collapse into one recompute of the
// most recent spec; superseded specs are discarded, never merged.
func (s *Service) SetFilter(spec task.FilterSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &spec
	if s.debounce <= 0 {
		s.applyPendingLocked()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.applyPendingLocked()
	})
}

func (s *Service) applyPendingLocked() {
	if s.pending == nil {
		return
	}
	s.spec = *s.pending
	s.pending = nil
	s.filtered = task.Apply(s.all, s.spec)
	s.views = computeViews(s.filtered, s.all, s.ref)
	s.meta.Filtered = len(s.filtered)
}

// commit replaces the whole dataset state atomically. The active filter
// resets with the collection it applied to.
func (s *Service) commit(snap *Snapshot) {
	views := computeViews(snap.Tasks, snap.Tasks, snap.Reference)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = nil
	s.all = snap.Tasks
	s.ref = snap.Reference
	s.spec = task.FilterSpec{}
	s.filtered = snap.Tasks
	s.views = views
	s.meta = Meta{
		DatasetID:  snap.ID,
		FileName:   snap.FileName,
		Schema:     snap.Schema,
		ImportedAt: snap.CreatedAt,
		TaskCount:  len(snap.Tasks),
		Filtered:   len(snap.Tasks),
	}
}

// Loaded reports whether a dataset is currently committed.
func (s *Service) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta.DatasetID != ""
}

// Meta returns the current dataset metadata.
func (s *Service) Meta() Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// Filtered returns the current filtered view.
func (s *Service) Filtered() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Views returns the current aggregate views.
func (s *Service) Views() Views {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views
}

// computeViews builds every view structure. The aggregations are
// independent pure functions, so they fan out.
func computeViews(filtered, all []task.Task, ref time.Time) Views {
	var v Views
	var wg conc.WaitGroup
	wg.Go(func() { v.KPIs = aggregate.KPIs(filtered, ref) })
	wg.Go(func() { v.Status = aggregate.StatusDistribution(filtered) })
	wg.Go(func() { v.Stages = aggregate.StageDistribution(filtered) })
	wg.Go(func() { v.Priorities = aggregate.PriorityDistribution(filtered) })
	// The trend deliberately covers the unfiltered collection: it tracks
	// overall project trajectory regardless of the active filter.
	wg.Go(func() { v.Trend = aggregate.WeeklyTrend(all) })
	wg.Go(func() { v.ProgressByResponsible = aggregate.ProgressBy(filtered, aggregate.ByResponsible) })
	wg.Go(func() { v.ProgressByStrategy = aggregate.ProgressBy(filtered, aggregate.ByStrategy) })
	wg.Wait()
	return v
}

// parseCSV reads the header row and data rows into string maps. Columns
// beyond the header width are dropped; short rows leave their trailing
// fields empty.
func parseCSV(data []byte) ([]string, []map[string]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return nil, nil, cerr.NewError(cerr.InvalidArgument, "file is empty or has no header row", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, cerr.NewError(cerr.InvalidArgument, "file is not valid CSV", err)
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, nil, cerr.NewError(cerr.InvalidArgument, "file has no data rows", nil)
	}
	return headers, rows, nil
}

func missingColumns(headers, required []string) []string {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[h] = true
	}
	var missing []string
	for _, col := range required {
		if !set[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
