package aggregate

import (
	"fmt"
	"time"

	"github.com/yavdigital/taskmaster/internal/task"
)

// KPIValues are the scalar counters shown on the dashboard cards.
type KPIValues struct {
	Total               int `json:"total"`
	Active              int `json:"active"`
	Pending             int `json:"pending"`
	InProgress          int `json:"in_progress"`
	Completed           int `json:"completed"`
	CompletedThisWeek   int `json:"completed_this_week"`
	Overdue             int `json:"overdue"`
	Stale               int `json:"stale"`
	HighPriorityPending int `json:"high_priority_pending"`
	PendingExternal     int `json:"pending_external"`
	// ClientActiveTime is the humanized elapsed time since the earliest
	// valid creation date, "N/D" when none exists.
	ClientActiveTime string `json:"client_active_time"`
}

// KPIs summarizes a task collection against the reference instant.
func KPIs(tasks []task.Task, ref time.Time) KPIValues {
	v := KPIValues{
		Total:            len(tasks),
		ClientActiveTime: task.StatusUndefined,
	}

	var earliest *time.Time
	for _, t := range tasks {
		if t.Active {
			v.Active++
		}
		switch t.Status {
		case task.StatusPending:
			v.Pending++
		case task.StatusInProgress:
			v.InProgress++
		case task.StatusCompleted:
			v.Completed++
		}
		if t.CompletedThisWeek {
			v.CompletedThisWeek++
		}
		if t.Overdue {
			v.Overdue++
		}
		if t.Stale {
			v.Stale++
		}
		if t.HighPriorityPending {
			v.HighPriorityPending++
		}
		if t.ExternallyBlocked && !t.IsClosed() {
			v.PendingExternal++
		}
		if t.CreatedAt != nil && (earliest == nil || t.CreatedAt.Before(*earliest)) {
			earliest = t.CreatedAt
		}
	}

	if earliest != nil {
		v.ClientActiveTime = humanizeSince(*earliest, ref)
	}
	return v
}

// humanizeSince renders the elapsed time between two instants in
// approximate pt-BR units, matching the dashboard's display locale.
func humanizeSince(from, to time.Time) string {
	days := int(to.Sub(from).Hours() / 24)
	switch {
	case days < 1:
		return "menos de 1 dia"
	case days < 30:
		return plural(days, "dia", "dias")
	case days < 365:
		return plural(days/30, "mês", "meses")
	default:
		return plural(days/365, "ano", "anos")
	}
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
