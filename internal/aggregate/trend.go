package aggregate

import (
	"sort"

	"github.com/yavdigital/taskmaster/internal/task"
	"github.com/yavdigital/taskmaster/pkg/timeparse"
)

// TrendPoint is one week of the cumulative created-vs-completed trend.
type TrendPoint struct {
	Week  string `json:"week"`
	Label string `json:"label"` // dd/mm of the week's Monday
	// CompletedCumulative is the running total of completions up to and
	// including this week.
	CompletedCumulative int `json:"completed_cumulative"`
	// ActiveCumulative is max(0, created so far − completed so far).
	ActiveCumulative int `json:"active_cumulative"`
}

// WeeklyTrend accumulates creations and completions over the union of
// all week identifiers referenced by the collection, in chronological
// order (ISO week identifiers sort lexicographically). Callers pass the
// UNFILTERED collection: the trend reflects overall project trajectory
// regardless of the active filter.
func WeeklyTrend(allTasks []task.Task) []TrendPoint {
	type weekTotals struct {
		created   int
		completed int
	}
	weeks := make(map[string]*weekTotals)
	bump := func(id string, completed bool) {
		if id == "" {
			return
		}
		wt, ok := weeks[id]
		if !ok {
			wt = &weekTotals{}
			weeks[id] = wt
		}
		if completed {
			wt.completed++
		} else {
			wt.created++
		}
	}
	for _, t := range allTasks {
		bump(t.CreationWeek, false)
		bump(t.CompletionWeek, true)
	}

	ids := make([]string, 0, len(weeks))
	for id := range weeks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	points := make([]TrendPoint, 0, len(ids))
	var created, completed int
	for _, id := range ids {
		created += weeks[id].created
		completed += weeks[id].completed
		active := created - completed
		if active < 0 {
			active = 0
		}
		points = append(points, TrendPoint{
			Week:                id,
			Label:               timeparse.FormatWeekID(id),
			CompletedCumulative: completed,
			ActiveCumulative:    active,
		})
	}
	return points
}
