// Package insight produces the serializable projection of the filtered
// task collection that the rendering layer hands to an external
// text-generation service for narrative analysis. The service itself —
// its availability and output quality — is not this package's concern.
package insight

import (
	"time"

	"github.com/yavdigital/taskmaster/internal/task"
)

// Record is one simplified task: dates flattened to "YYYY-MM-DD"
// strings so the projection survives any JSON round trip unchanged.
type Record struct {
	ID                  int     `json:"id"`
	Title               string  `json:"title"`
	Responsible         string  `json:"responsible"`
	Strategy            string  `json:"strategy"`
	Stage               string  `json:"stage,omitempty"`
	Status              string  `json:"status"`
	Priority            string  `json:"priority"`
	CreatedAt           string  `json:"created_at,omitempty"`
	Deadline            string  `json:"deadline,omitempty"`
	CompletedAt         string  `json:"completed_at,omitempty"`
	WorkloadHours       float64 `json:"workload_hours"`
	TrackedHours        float64 `json:"tracked_hours"`
	Overdue             bool    `json:"overdue"`
	Stale               bool    `json:"stale"`
	HighPriorityPending bool    `json:"high_priority_pending"`
	ExternallyBlocked   bool    `json:"externally_blocked"`
}

// Projection maps the filtered collection into simplified records.
func Projection(tasks []task.Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, Record{
			ID:                  t.ID,
			Title:               t.Title,
			Responsible:         t.Responsible,
			Strategy:            t.Strategy,
			Stage:               t.Stage,
			Status:              t.Status,
			Priority:            task.PriorityLabel(t.Priority),
			CreatedAt:           dateString(t.CreatedAt),
			Deadline:            dateString(t.Deadline),
			CompletedAt:         dateString(t.CompletedAt),
			WorkloadHours:       t.WorkloadHours,
			TrackedHours:        t.TrackedHours,
			Overdue:             t.Overdue,
			Stale:               t.Stale,
			HighPriorityPending: t.HighPriorityPending,
			ExternallyBlocked:   t.ExternallyBlocked,
		})
	}
	return records
}

func dateString(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}
