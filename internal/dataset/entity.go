// Package dataset owns the lifecycle of the imported task collection:
// CSV import and validation, the in-memory canonical collection, the
// debounced filtered view, and snapshot persistence across restarts.
package dataset

import (
	"time"

	"github.com/yavdigital/taskmaster/internal/aggregate"
	"github.com/yavdigital/taskmaster/internal/task"
)

// Snapshot is the persisted form of one imported dataset. Dates inside
// the tasks serialize as timestamps, absent dates as null, so a snapshot
// survives a restart in the same plain-data shape the HTTP API exposes.
type Snapshot struct {
	ID        string      `yaml:"id"`
	FileName  string      `yaml:"file_name"`
	Schema    string      `yaml:"schema"`
	Reference time.Time   `yaml:"reference"`
	CreatedAt time.Time   `yaml:"created_at"`
	Tasks     []task.Task `yaml:"tasks"`
}

// ImportResult summarizes what one import committed.
type ImportResult struct {
	DatasetID string `json:"dataset_id"`
	FileName  string `json:"file_name"`
	Schema    string `json:"schema"`
	TotalRows int    `json:"total_rows"`
	Imported  int    `json:"imported"`
	Errored   int    `json:"errored"`
}

// Meta describes the currently loaded dataset.
type Meta struct {
	DatasetID  string    `json:"dataset_id"`
	FileName   string    `json:"file_name"`
	Schema     string    `json:"schema"`
	ImportedAt time.Time `json:"imported_at"`
	TaskCount  int       `json:"task_count"`
	Filtered   int       `json:"filtered"`
}

// Views bundles every aggregate structure the dashboard renders. All of
// them derive from the filtered view except Trend, which always covers
// the full unfiltered collection.
type Views struct {
	KPIs                  aggregate.KPIValues      `json:"kpis"`
	Status                aggregate.StatusOverview `json:"status"`
	Stages                []aggregate.Segment      `json:"stages"`
	Priorities            []aggregate.Segment      `json:"priorities"`
	Trend                 []aggregate.TrendPoint   `json:"trend"`
	ProgressByResponsible []aggregate.ProgressItem `json:"progress_by_responsible"`
	ProgressByStrategy    []aggregate.ProgressItem `json:"progress_by_strategy"`
}
