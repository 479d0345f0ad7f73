// Package task holds the canonical task record produced from a CSV
// export row, the derivation of its computed flags, and the filter engine
// over task collections.
package task

import "time"

// Canonical status vocabulary. Exports with other vocabularies are mapped
// into this one at normalization time.
const (
	StatusPending      = "Pendente"
	StatusInProgress   = "Em andamento"
	StatusCompleted    = "Finalizado"
	StatusDiscontinued = "Descontinuada"
	StatusUndefined    = "N/D"
)

const (
	// NotAvailable is the sentinel for missing responsible/strategy values.
	NotAvailable = "N/A"
	// UndefinedStage buckets tasks with no workflow stage label.
	UndefinedStage = "Não definida"
)

// Priority ranks as exported upstream: 1 high, 2 medium, 3 low,
// 0 undefined.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
	PriorityNone   = 0
)

// PriorityLabel maps a priority rank to its display label.
func PriorityLabel(p int) string {
	switch p {
	case PriorityHigh:
		return "Alta"
	case PriorityMedium:
		return "Média"
	case PriorityLow:
		return "Baixa"
	default:
		return StatusUndefined
	}
}

// Task is the canonical normalized record for one workflow item. Raw
// fields are set once by the normalizer, derived fields once by derive;
// tasks are never mutated after that.
type Task struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Responsible string `json:"responsible" yaml:"responsible"`
	Strategy    string `json:"strategy" yaml:"strategy"`
	Stage       string `json:"stage,omitempty" yaml:"stage,omitempty"`
	Status      string `json:"status" yaml:"status"`
	Priority    int    `json:"priority,omitempty" yaml:"priority,omitempty"`
	PendingWith string `json:"pending_with,omitempty" yaml:"pending_with,omitempty"`
	Paused      string `json:"paused,omitempty" yaml:"paused,omitempty"`

	CreatedAt   *time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" yaml:"updated_at"`
	StartedAt   *time.Time `json:"started_at" yaml:"started_at"`
	Deadline    *time.Time `json:"deadline" yaml:"deadline"`
	CompletedAt *time.Time `json:"completed_at" yaml:"completed_at"`

	WorkloadHours float64 `json:"workload_hours" yaml:"workload_hours"`
	TrackedHours  float64 `json:"tracked_hours" yaml:"tracked_hours"`

	// Extra carries unrecognized CSV columns opaquely for display; the
	// core never interprets them.
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`

	// Derived fields, computed once at normalization time against a shared
	// reference instant.
	Overdue             bool   `json:"overdue" yaml:"overdue"`
	Stale               bool   `json:"stale" yaml:"stale"`
	CompletedThisWeek   bool   `json:"completed_this_week" yaml:"completed_this_week"`
	HighPriorityPending bool   `json:"high_priority_pending" yaml:"high_priority_pending"`
	ExternallyBlocked   bool   `json:"externally_blocked" yaml:"externally_blocked"`
	Active              bool   `json:"active" yaml:"active"`
	CreationWeek        string `json:"creation_week,omitempty" yaml:"creation_week,omitempty"`
	CompletionWeek      string `json:"completion_week,omitempty" yaml:"completion_week,omitempty"`

	// Invalid marks a row the normalizer could not recover; such tasks are
	// dropped before the collection is committed.
	Invalid bool `json:"-" yaml:"-"`
}

// IsPaused reports whether the raw pause indicator is affirmative.
func (t *Task) IsPaused() bool {
	return isAffirmative(t.Paused)
}

// IsClosed reports whether the task left the active pipeline.
func (t *Task) IsClosed() bool {
	return t.Status == StatusCompleted || t.Status == StatusDiscontinued
}
