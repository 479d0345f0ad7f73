package task

import (
	"strconv"
	"time"
)

// TriState is a three-valued filter criterion.
type TriState string

const (
	TriAll TriState = "all"
	TriYes TriState = "yes"
	TriNo  TriState = "no"
)

// FilterSpec describes the active filter criteria. Empty selection sets
// impose no restriction; within a set, membership is OR; across fields,
// criteria compose with AND.
type FilterSpec struct {
	// From/To bound the creation date by calendar day, both ends
	// inclusive; instants compare by the day they fall on in their own
	// location. With only From set, a task matches when created exactly
	// on From's day.
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`

	Responsibles []string `json:"responsibles,omitempty"`
	Statuses     []string `json:"statuses,omitempty"`
	Strategies   []string `json:"strategies,omitempty"`
	// Priorities holds string-coerced priority ranks ("1", "2", "3").
	Priorities []string `json:"priorities,omitempty"`

	Paused            TriState `json:"paused,omitempty"`
	ExternallyPending TriState `json:"externally_pending,omitempty"`
}

// IsZero reports whether the spec imposes no restriction at all.
func (s FilterSpec) IsZero() bool {
	return s.From == nil && s.To == nil &&
		len(s.Responsibles) == 0 && len(s.Statuses) == 0 &&
		len(s.Strategies) == 0 && len(s.Priorities) == 0 &&
		(s.Paused == "" || s.Paused == TriAll) &&
		(s.ExternallyPending == "" || s.ExternallyPending == TriAll)
}

// Apply returns the subset of tasks matching spec, preserving input
// order. It is a pure function and idempotent: applying the same spec to
// its own output returns the same set. Tasks missing a field referenced
// by a criterion fail that criterion rather than erroring.
func Apply(tasks []Task, spec FilterSpec) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(&t, spec) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t *Task, spec FilterSpec) bool {
	if spec.From != nil {
		if t.CreatedAt == nil {
			return false
		}
		// Calendar-day comparison: each instant is read in its own
		// location, so a UTC-decoded bound matches a local creation date
		// falling on the same calendar day.
		created := dayKey(*t.CreatedAt)
		from := dayKey(*spec.From)
		if spec.To == nil {
			if created != from {
				return false
			}
		} else {
			// Closed interval, both endpoint days inclusive.
			if created < from || created > dayKey(*spec.To) {
				return false
			}
		}
	}

	if !memberOf(spec.Responsibles, t.Responsible) {
		return false
	}
	if !memberOf(spec.Statuses, t.Status) {
		return false
	}
	if !memberOf(spec.Strategies, t.Strategy) {
		return false
	}
	if !memberOf(spec.Priorities, strconv.Itoa(t.Priority)) {
		return false
	}

	switch spec.Paused {
	case TriYes:
		if !t.IsPaused() {
			return false
		}
	case TriNo:
		if t.IsPaused() {
			return false
		}
	}

	switch spec.ExternallyPending {
	case TriYes:
		if !t.ExternallyBlocked {
			return false
		}
	case TriNo:
		if t.ExternallyBlocked {
			return false
		}
	}

	return true
}

// dayKey collapses an instant to a comparable calendar day in the
// instant's own location.
func dayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func memberOf(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
