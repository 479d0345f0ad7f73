package aggregate

import (
	"sort"

	"github.com/yavdigital/taskmaster/internal/task"
)

// ProgressItem is one group's completion ratio.
type ProgressItem struct {
	Name       string  `json:"name"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

// Grouping keys for ProgressBy.
var (
	ByResponsible = func(t task.Task) string { return t.Responsible }
	ByStrategy    = func(t task.Task) string { return t.Strategy }
)

// ProgressBy groups tasks by key and computes each group's completion
// percentage. Paused and discontinued tasks are excluded from the
// denominator entirely. Groups come back sorted alphabetically; a group
// with total 0 has percentage 0, never NaN.
func ProgressBy(tasks []task.Task, key func(task.Task) string) []ProgressItem {
	type stats struct {
		total     int
		completed int
	}
	groups := make(map[string]*stats)
	for _, t := range tasks {
		if t.IsPaused() || t.Status == task.StatusDiscontinued {
			continue
		}
		name := key(t)
		if name == "" {
			name = task.NotAvailable
		}
		g, ok := groups[name]
		if !ok {
			g = &stats{}
			groups[name] = g
		}
		g.total++
		if t.Status == task.StatusCompleted {
			g.completed++
		}
	}

	items := make([]ProgressItem, 0, len(groups))
	for name, g := range groups {
		var pct float64
		if g.total > 0 {
			pct = float64(g.completed) / float64(g.total) * 100
		}
		items = append(items, ProgressItem{
			Name:       name,
			Total:      g.total,
			Completed:  g.completed,
			Percentage: pct,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
